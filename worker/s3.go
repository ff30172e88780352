package worker

import (
	"text2phenotype.com/scribe/s3client"
)

type s3Transactions interface {
	saveArtifacts(task *Task, artifacts map[string]string) error
	getTranscript(task *Task) ([]byte, error)
	close()
}

type s3ClientWrapper struct {
	s3Client *s3client.Client
}

func (wrapper *s3ClientWrapper) close() {
	wrapper.s3Client.Close()
}

func (wrapper *s3ClientWrapper) saveArtifacts(task *Task, artifacts map[string]string) error {
	for artifact, document := range artifacts {
		key := getArtifactFileKey(task, artifact)
		if _, err := wrapper.s3Client.Upload(document, key); err != nil {
			return err
		}
	}
	return nil
}

func (wrapper *s3ClientWrapper) getTranscript(task *Task) ([]byte, error) {
	return wrapper.s3Client.Download(task.chunkTask.TextFileKey)
}
