package slots

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/Domenick1991/aerodrome/internal/kafka"
	"github.com/Domenick1991/aerodrome/internal/repository"
	"github.com/google/uuid"
)

type SlotUseCase interface {
	CreateSlot(ctx context.Context, input CreateSlotInput) (*domain.Slot, error)
	GetSlot(ctx context.Context, id int64) (*domain.Slot, error)
	ListSlots(ctx context.Context, pilotID *int64) ([]domain.Slot, error)
	AdvanceState(ctx context.Context, id int64, input AdvanceStateInput) (*domain.Slot, error)
	CancelSlot(ctx context.Context, id int64) (*domain.Slot, error)
	AttachFueling(ctx context.Context, id, fuelingID int64) (*domain.Slot, error)
	CancelStaleRequests(ctx context.Context) ([]domain.Slot, error)
}

type Cache interface {
	AcquireBookingLock(ctx context.Context, infrastructureID int64, ttl time.Duration) (bool, error)
	ReleaseBookingLock(ctx context.Context, infrastructureID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

// Pricer computes a slot total; implemented by the billing service.
type Pricer interface {
	SlotCost(ctx context.Context, infrastructureID int64, fuelingID *int64, start, end time.Time) (float64, error)
}

type SlotService struct {
	slots              repository.SlotRepository
	infras             repository.InfrastructureRepository
	pricer             Pricer
	cache              Cache
	producer           Producer
	slotTopic          string
	notificationsTopic string
	margin             time.Duration
	lockTTL            time.Duration

	mu            sync.Mutex
	resourceLocks map[int64]*sync.Mutex
}

type CreateSlotInput struct {
	PilotID          int64     `json:"pilot_id"`
	InfrastructureID int64     `json:"infrastructure_id"`
	AircraftID       *string   `json:"aircraft_id"`
	FuelingID        *int64    `json:"fueling_id"`
	PlannedStart     time.Time `json:"planned_start"`
	PlannedEnd       time.Time `json:"planned_end"`
}

type AdvanceStateInput struct {
	State       domain.SlotState `json:"state"`
	ActualStart *time.Time       `json:"actual_start"`
	ActualEnd   *time.Time       `json:"actual_end"`
}

type SlotServiceOption func(*SlotService)

func WithNotificationsTopic(topic string) SlotServiceOption {
	return func(s *SlotService) {
		s.notificationsTopic = topic
	}
}

func WithMargin(margin time.Duration) SlotServiceOption {
	return func(s *SlotService) {
		s.margin = margin
	}
}

func NewSlotService(
	slots repository.SlotRepository,
	infras repository.InfrastructureRepository,
	pricer Pricer,
	cache Cache,
	producer Producer,
	slotTopic string,
	lockTTL time.Duration,
	opts ...SlotServiceOption,
) *SlotService {
	service := &SlotService{
		slots:         slots,
		infras:        infras,
		pricer:        pricer,
		cache:         cache,
		producer:      producer,
		slotTopic:     slotTopic,
		margin:        SafetyMargin,
		lockTTL:       lockTTL,
		resourceLocks: make(map[int64]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

var ErrResourceBusy = errors.New("another booking is in progress for this infrastructure, retry")

const notifyRetries = 3

// CreateSlot validates the candidate window against every blocking slot on
// the infrastructure and persists it only when admissible. The read-validate
// -insert section is serialized per infrastructure: an in-process mutex plus,
// when Redis is configured, a cross-instance booking lock.
func (s *SlotService) CreateSlot(ctx context.Context, input CreateSlotInput) (*domain.Slot, error) {
	if input.PilotID <= 0 {
		return nil, domain.NewRuleError(domain.RuleInvalidWindow, "pilot id is required")
	}
	if err := ValidateWindow(input.PlannedStart, input.PlannedEnd); err != nil {
		return nil, err
	}

	infra, err := s.infras.GetByID(ctx, input.InfrastructureID)
	if err != nil {
		return nil, err
	}

	lock := s.resourceLock(infra.ID)
	lock.Lock()
	defer lock.Unlock()

	if s.cache != nil {
		ok, err := s.cache.AcquireBookingLock(ctx, infra.ID, s.lockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrResourceBusy
		}
		defer func() {
			_ = s.cache.ReleaseBookingLock(ctx, infra.ID)
		}()
	}

	existing, err := s.slots.ListBlocking(ctx, infra.ID,
		input.PlannedStart.Add(-s.margin), input.PlannedEnd.Add(s.margin))
	if err != nil {
		return nil, err
	}
	if err := CheckAdmissible(infra, input.PlannedStart, input.PlannedEnd, existing, s.margin); err != nil {
		return nil, err
	}

	total, err := s.pricer.SlotCost(ctx, infra.ID, input.FuelingID, input.PlannedStart, input.PlannedEnd)
	if err != nil {
		return nil, err
	}

	slot := &domain.Slot{
		Reference:        uuid.NewString(),
		PilotID:          input.PilotID,
		InfrastructureID: infra.ID,
		AircraftID:       input.AircraftID,
		FuelingID:        input.FuelingID,
		PlannedStart:     input.PlannedStart,
		PlannedEnd:       input.PlannedEnd,
		State:            domain.SlotStateRequested,
		TotalCost:        &total,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.publish(ctx, "slot_requested", slot)
	return slot, nil
}

func (s *SlotService) GetSlot(ctx context.Context, id int64) (*domain.Slot, error) {
	return s.slots.GetByID(ctx, id)
}

func (s *SlotService) ListSlots(ctx context.Context, pilotID *int64) ([]domain.Slot, error) {
	if pilotID != nil {
		return s.slots.ListByPilot(ctx, *pilotID)
	}
	return s.slots.List(ctx)
}

// AdvanceState moves a slot forward through its lifecycle. Completing a slot
// requires the actual occupancy window and recomputes the stored total from
// it, overwriting the quote made at creation.
func (s *SlotService) AdvanceState(ctx context.Context, id int64, input AdvanceStateInput) (*domain.Slot, error) {
	current, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.State.CanTransitionTo(input.State) {
		return nil, domain.NewRuleError(domain.RuleInvalidTransition,
			"invalid state transition from %s to %s", current.State, input.State)
	}
	if input.State == current.State {
		return current, nil
	}

	var total *float64
	actualStart, actualEnd := input.ActualStart, input.ActualEnd
	if input.State == domain.SlotStateCompleted {
		if actualStart == nil {
			actualStart = current.ActualStart
		}
		if actualEnd == nil {
			actualEnd = current.ActualEnd
		}
		if actualStart == nil || actualEnd == nil {
			return nil, domain.NewRuleError(domain.RuleInvalidTransition,
				"completion requires actual start and end times")
		}
		if err := ValidateWindow(*actualStart, *actualEnd); err != nil {
			return nil, err
		}
		cost, err := s.pricer.SlotCost(ctx, current.InfrastructureID, current.FuelingID, *actualStart, *actualEnd)
		if err != nil {
			return nil, err
		}
		total = &cost
	}

	updated, err := s.slots.UpdateState(ctx, id, input.State, actualStart, actualEnd, total)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventType(input.State), updated)
	return updated, nil
}

func (s *SlotService) CancelSlot(ctx context.Context, id int64) (*domain.Slot, error) {
	current, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.State == domain.SlotStateCancelled {
		return current, nil
	}
	return s.AdvanceState(ctx, id, AdvanceStateInput{State: domain.SlotStateCancelled})
}

// AttachFueling links a fueling record to the slot and recomputes its total,
// overwriting the previously stored one.
func (s *SlotService) AttachFueling(ctx context.Context, id, fuelingID int64) (*domain.Slot, error) {
	current, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.State == domain.SlotStateCancelled {
		return nil, domain.NewRuleError(domain.RuleInvalidTransition,
			"cannot attach fueling to a cancelled slot")
	}

	start, end := current.Window()
	total, err := s.pricer.SlotCost(ctx, current.InfrastructureID, &fuelingID, start, end)
	if err != nil {
		return nil, err
	}

	updated, err := s.slots.AttachFueling(ctx, id, fuelingID, total)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "slot_fueled", updated)
	return updated, nil
}

// CancelStaleRequests cancels Requested slots whose planned start passed
// without confirmation. Run from the worker sweep.
func (s *SlotService) CancelStaleRequests(ctx context.Context) ([]domain.Slot, error) {
	cancelled, err := s.slots.CancelStaleRequests(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	for i := range cancelled {
		s.publish(ctx, "slot_expired", &cancelled[i])
	}
	return cancelled, nil
}

func (s *SlotService) resourceLock(infrastructureID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.resourceLocks[infrastructureID]
	if !ok {
		lock = &sync.Mutex{}
		s.resourceLocks[infrastructureID] = lock
	}
	return lock
}

func (s *SlotService) publish(ctx context.Context, evType string, slot *domain.Slot) {
	if s.producer == nil || s.slotTopic == "" {
		return
	}
	start, end := slot.Window()
	event := kafka.SlotEvent{
		Type:             evType,
		Reference:        slot.Reference,
		SlotID:           slot.ID,
		PilotID:          slot.PilotID,
		InfrastructureID: slot.InfrastructureID,
		State:            string(slot.State),
		Start:            start,
		End:              end,
		TotalCost:        slot.TotalCost,
	}
	if err := s.producer.Publish(ctx, s.slotTopic, slot.Reference, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for slot %s: %v", evType, slot.Reference, err)
		return
	}
	// Notifications drive pilot emails, so transient broker failures are
	// retried rather than dropped.
	if s.notificationsTopic != "" {
		if err := s.producer.PublishWithRetry(ctx, s.notificationsTopic, slot.Reference, event, notifyRetries); err != nil {
			log.Printf("WARNING: failed to publish %s notification for slot %s: %v", evType, slot.Reference, err)
		}
	}
}

func eventType(state domain.SlotState) string {
	switch state {
	case domain.SlotStateConfirmed:
		return "slot_confirmed"
	case domain.SlotStateAuthorized:
		return "slot_authorized"
	case domain.SlotStateCompleted:
		return "slot_completed"
	case domain.SlotStateCancelled:
		return "slot_cancelled"
	default:
		return "slot_updated"
	}
}

var _ SlotUseCase = (*SlotService)(nil)
