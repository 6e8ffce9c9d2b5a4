package conversation

import (
	"context"

	"github.com/google/uuid"
)

type noOpService struct{}

// NewNoOpService returns a Service implementation that always reports the
// feature as disabled.
func NewNoOpService() Service {
	return noOpService{}
}

func (noOpService) Start(context.Context) (uuid.UUID, error) {
	return uuid.Nil, ErrFeatureDisabled
}

func (noOpService) Append(context.Context, MessageRequest) (*Message, error) {
	return nil, ErrFeatureDisabled
}

func (noOpService) Load(context.Context, uuid.UUID) ([]*Message, error) {
	return nil, ErrFeatureDisabled
}

func (noOpService) Current() uuid.UUID {
	return uuid.Nil
}

func (noOpService) Messages() []*Message {
	return nil
}
