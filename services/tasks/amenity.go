package tasks

import (
	"encoding/json"

	"yadori/models"

	"github.com/hibiken/asynq"
)

const TypeAmenityNotify = "amenity:notify"

// NewAmenityNotifyTask builds the staff notification task for a newly filed
// amenity request.
func NewAmenityNotifyTask(payload models.AmenityTaskPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAmenityNotify, b)
	opts := []asynq.Option{asynq.MaxRetry(5)}

	return task, opts, nil
}
