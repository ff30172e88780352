package tasks

import (
	"text2phenotype.com/scribe/redis"
)

const ChunksDB redis.DB = 2

type TaskStatus string

const (
	TaskStatusProcessing       TaskStatus = "processing"
	TaskStatusSubmitted        TaskStatus = "submitted"
	TaskStatusStarted          TaskStatus = "started"
	TaskStatusFailed           TaskStatus = "failed"
	TaskStatusCompletedSuccess TaskStatus = "completed - success"
	TaskStatusCompletedFailure TaskStatus = "completed - failure"
	TaskStatusCanceled         TaskStatus = "canceled"
)

func (s TaskStatus) Complete() bool {
	return s == TaskStatusCompletedSuccess || s == TaskStatusCompletedFailure || s == TaskStatusCanceled
}

func (s TaskStatus) Submitted() bool {
	return s == TaskStatusSubmitted || s == TaskStatusStarted || s == TaskStatusProcessing
}

type ChunkTask struct {
	DocID        string            `json:"document_id,omitempty"`
	JobID        string            `json:"job_id,omitempty"`
	TextFileKey  string            `json:"text_file_key,omitempty"`
	TaskStatuses ChunkTaskStatuses `json:"task_statuses"`
}

type ChunkTaskStatuses struct {
	Scribe ChunkTaskInfo `json:"scribe"`
}

type ChunkTaskInfo struct {
	ResultsFileKey string  `json:"results_file_key,omitempty"`
	StartedAt      *string `json:"started_at,omitempty"`
	// No omitempty: a restarted attempt clears completed_at, and the merge
	// patch must carry that null through to delete the stored key.
	CompletedAt       *string    `json:"completed_at"`
	Attempts          int        `json:"attempts"`
	Status            TaskStatus `json:"status"`
	Dependencies      []string   `json:"dependencies,omitempty"`
	ModelDependencies []string   `json:"model_dependencies,omitempty"`
	ErrorMessages     []string   `json:"error_messages,omitempty"`
}

type ChunkTasks struct {
	client redis.Client
}

func (tasks ChunkTasks) Get(redisKey string) (*ChunkTask, error) {
	var task ChunkTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks ChunkTasks) Update(redisKey string, updateFunc func(task *ChunkTask)) error {
	var task ChunkTask
	return tasks.client.UpdateDocument(redisKey, &task, func() error {
		updateFunc(&task)
		return nil
	})
}
