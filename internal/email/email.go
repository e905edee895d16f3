package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/aerodrome/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.SlotEvent) error {
	fmt.Printf("notify pilot %d: %s for slot %s on infrastructure %d\n", event.PilotID, event.Type, event.Reference, event.InfrastructureID)
	return nil
}
