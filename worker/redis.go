package worker

import (
	"fmt"

	"text2phenotype.com/scribe/pipeline"
	"text2phenotype.com/scribe/tasks"
)

type redisTransactions interface {
	getChunkTask(redisKey string) (*tasks.ChunkTask, error)
	getJobTask(task *Task) (*tasks.JobTask, error)
	getDocTask(task *Task) (*tasks.DocumentTaskCached, error)
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task) error
	close()
}

type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	err := wrapper.tasksClient.Chunks.Update(task.redisKey, func(task *tasks.ChunkTask) {
		task.TaskStatuses.Scribe.Status = tasks.TaskStatusStarted
		task.TaskStatuses.Scribe.Attempts += 1
		task.TaskStatuses.Scribe.StartedAt = getFormattedNow()
		task.TaskStatuses.Scribe.CompletedAt = nil
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	err := wrapper.tasksClient.Chunks.Update(task.redisKey, func(chunkTask *tasks.ChunkTask) {
		chunkTask.TaskStatuses.Scribe.Status = tasks.TaskStatusCanceled
		chunkTask.TaskStatuses.Scribe.StartedAt = getFormattedNow()
		chunkTask.TaskStatuses.Scribe.CompletedAt = getFormattedNow()
		chunkTask.TaskStatuses.Scribe.Attempts += 1
		chunkTask.TaskStatuses.Scribe.ErrorMessages = append(
			chunkTask.TaskStatuses.Scribe.ErrorMessages,
			errorMessages...,
		)
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	err := wrapper.tasksClient.Documents.Update(task.chunkTask.DocID, func(docTask *tasks.DocumentTask) {
		docTask.FailedTasks = append(docTask.FailedTasks, "scribe")
		if docTask.FailedChunks == nil {
			docTask.FailedChunks = make(map[string][]string)
		}
		docTask.FailedChunks[task.redisKey] = append(docTask.FailedChunks[task.redisKey], "scribe")
	})
	if err != nil {
		return err
	}
	err = wrapper.tasksClient.Chunks.Update(task.redisKey, func(chunkTask *tasks.ChunkTask) {
		chunkTask.TaskStatuses.Scribe.Status = tasks.TaskStatusCompletedFailure
		chunkTask.TaskStatuses.Scribe.StartedAt = getFormattedNow()
		chunkTask.TaskStatuses.Scribe.CompletedAt = getFormattedNow()
		chunkTask.TaskStatuses.Scribe.Attempts += 1
		chunkTask.TaskStatuses.Scribe.ErrorMessages = append(
			chunkTask.TaskStatuses.Scribe.ErrorMessages,
			fmt.Sprintf(
				"Task has exceeded retries. (Attempts: %d, max retries: %d )",
				chunkTask.TaskStatuses.Scribe.Attempts,
				maxRetries,
			),
		)
	})
	return err
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.tasksClient.Chunks.Update(task.redisKey, func(chunkTask *tasks.ChunkTask) {
		chunkTask.TaskStatuses.Scribe.Status = tasks.TaskStatusFailed
		chunkTask.TaskStatuses.Scribe.CompletedAt = getFormattedNow()
		chunkTask.TaskStatuses.Scribe.ErrorMessages = append(chunkTask.TaskStatuses.Scribe.ErrorMessages, err.Error())
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task) error {
	return wrapper.tasksClient.Chunks.Update(task.redisKey, func(chunkTask *tasks.ChunkTask) {
		if !chunkTask.TaskStatuses.Scribe.Status.Complete() {
			chunkTask.TaskStatuses.Scribe.Status = tasks.TaskStatusCompletedSuccess
		}
		chunkTask.TaskStatuses.Scribe.CompletedAt = getFormattedNow()
		chunkTask.TaskStatuses.Scribe.ResultsFileKey = getArtifactFileKey(task, pipeline.ArtifactMedicalSummary)
	})
}

func (wrapper *redisClientWrapper) getChunkTask(redisKey string) (*tasks.ChunkTask, error) {
	return wrapper.tasksClient.Chunks.Get(redisKey)
}

func (wrapper *redisClientWrapper) getJobTask(task *Task) (*tasks.JobTask, error) {
	return wrapper.tasksClient.Jobs.GetCached(task.chunkTask.JobID)
}

func (wrapper *redisClientWrapper) getDocTask(task *Task) (*tasks.DocumentTaskCached, error) {
	return wrapper.tasksClient.Documents.GetCached(task.chunkTask.DocID)
}
