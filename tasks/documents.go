package tasks

import (
	"text2phenotype.com/scribe/redis"
)

const DocumentsDB redis.DB = 0

type DocumentTask struct {
	FailedTasks  []string            `json:"failed_tasks,omitempty"`
	FailedChunks map[string][]string `json:"failed_chunks,omitempty"`
}

type DocumentTaskCached struct {
	DocInfo     map[string]interface{} `json:"document_info,omitempty"`
	FailedTasks []string               `json:"failed_tasks,omitempty"`
	JobID       string                 `json:"job_id,omitempty"`
	WorkType    string                 `json:"work_type,omitempty"`
}

type DocumentTasks struct {
	client redis.Client
}

func (tasks DocumentTasks) Get(redisKey string) (*DocumentTask, error) {
	var task DocumentTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks DocumentTasks) GetCached(redisKey string) (*DocumentTaskCached, error) {
	var task DocumentTaskCached
	err := tasks.client.GetDocument(cachedPropertiesKey(redisKey), &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update rewrites the document task and mirrors the shared fields into
// its cached-properties twin, which other services read without a lock.
func (tasks DocumentTasks) Update(redisKey string, updateFunc func(task *DocumentTask)) error {
	var task DocumentTask
	err := tasks.client.UpdateDocument(redisKey, &task, func() error {
		updateFunc(&task)
		return nil
	})
	if err != nil {
		return err
	}
	var cached DocumentTaskCached
	return tasks.client.UpdateDocument(cachedPropertiesKey(redisKey), &cached, func() error {
		cached.FailedTasks = task.FailedTasks
		return nil
	})
}
