package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"moneyflow/internal/models/db_models"
	"moneyflow/internal/models/response_models"
	"moneyflow/pkg/logger"
	"moneyflow/pkg/utils"
)

// GenerationFailedError is the failure variant of a generation result: the
// generator answered, but without a usable plan.
type GenerationFailedError struct {
	Message string
}

func (e *GenerationFailedError) Error() string {
	if e.Message == "" {
		return "trip plan generation failed"
	}
	return "trip plan generation failed: " + e.Message
}

// GenerationOutcome is the success variant. Changes starts with a delete_all
// descriptor whenever the plan was generated for an existing trip.
type GenerationOutcome struct {
	Trip               *response_models.GeneratedTrip
	Activities         []db_models.Activity
	Changes            []response_models.ChangeDescriptor
	Currency           string
	TravelersCount     int
	TotalEstimatedCost *float64
	Message            string
}

type TripGenerationServiceInterface interface {
	GenerateTripPlan(ctx context.Context, message string, currentTrip *db_models.Trip) (*GenerationOutcome, error)
}

type TripGenerationService struct {
	generator utils.TripPlanGenerator
	now       func() time.Time
}

func NewTripGenerationService(generator utils.TripPlanGenerator) TripGenerationServiceInterface {
	return &TripGenerationService{generator: generator, now: time.Now}
}

func (s *TripGenerationService) GenerateTripPlan(
	ctx context.Context,
	message string,
	currentTrip *db_models.Trip,
) (*GenerationOutcome, error) {
	prompt := BuildEnhancedPrompt(message, currentTrip)

	resp, err := s.generator.GenerateTripPlan(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if resp == nil || !resp.Success || resp.PlanData == nil {
		msg := ""
		if resp != nil {
			msg = resp.Message
		}
		return nil, &GenerationFailedError{Message: msg}
	}

	start := s.planStart(currentTrip, resp.Trip)
	currency := resp.PlanData.TripInfo.Currency
	if currency == "" && resp.Trip != nil {
		currency = resp.Trip.Currency
	}

	var tripID uuid.UUID
	if currentTrip != nil {
		tripID = currentTrip.ID
	}
	activities := FlattenPlan(resp.PlanData, start, currency, tripID)

	out := &GenerationOutcome{
		Trip:               resp.Trip,
		Activities:         activities,
		Currency:           currency,
		TravelersCount:     resp.PlanData.TripInfo.TravelersCount,
		TotalEstimatedCost: utils.ParseLenientFloat(resp.PlanData.Summary.TotalEstimatedCost),
		Message:            resp.Message,
	}

	if currentTrip != nil {
		out.Changes = append(out.Changes, response_models.ChangeDescriptor{Action: response_models.ChangeActionDeleteAll})
	}
	for i := range activities {
		out.Changes = append(out.Changes, response_models.ChangeDescriptor{
			Action:   response_models.ChangeActionAdd,
			Activity: &activities[i],
		})
	}

	logger.Get().Info("trip plan generated",
		zap.Int("activities", len(activities)),
		zap.Bool("replaces_existing", currentTrip != nil))
	return out, nil
}

func (s *TripGenerationService) planStart(currentTrip *db_models.Trip, generated *response_models.GeneratedTrip) time.Time {
	if currentTrip != nil && !currentTrip.StartDate.IsZero() {
		return currentTrip.StartDate
	}
	if generated != nil {
		if t, err := utils.ParseDate(generated.StartDate); err == nil {
			return t
		}
	}
	return utils.StartOfDay(s.now())
}

// BuildEnhancedPrompt appends the known facts of the current trip to the
// user's message. Without a trip the message is sent as is.
func BuildEnhancedPrompt(message string, trip *db_models.Trip) string {
	if trip == nil {
		return message
	}

	var b strings.Builder
	b.WriteString(message)
	b.WriteString("\n\nCurrent trip information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", trip.Name)
	fmt.Fprintf(&b, "- Destination: %s\n", trip.Destination)
	fmt.Fprintf(&b, "- Start date: %s\n", utils.FormatISODate(trip.StartDate))
	fmt.Fprintf(&b, "- End date: %s\n", utils.FormatISODate(trip.EndDate))
	fmt.Fprintf(&b, "- Duration: %d days\n", trip.DurationDays())
	if trip.Budget != nil {
		fmt.Fprintf(&b, "- Total budget: %.0f %s\n", trip.Budget.EstimatedCost, trip.Budget.Currency)
	}
	b.WriteString("Create a complete day-by-day plan for this trip.")
	return b.String()
}

// FlattenPlan produces one activity per listed activity per day. Malformed
// times fall back to 09:00 and malformed coordinates to nil.
func FlattenPlan(plan *response_models.GeneratedPlanData, start time.Time, currency string, tripID uuid.UUID) []db_models.Activity {
	if plan == nil {
		return nil
	}

	var out []db_models.Activity
	for _, day := range plan.DailyPlans {
		for _, ga := range day.Activities {
			at := utils.ActivityTime(start, day.Day, ga.StartTime)

			act := db_models.Activity{
				TripID:       tripID,
				Title:        strings.TrimSpace(ga.Title),
				Description:  ga.Description,
				ActivityType: db_models.ParseActivityType(ga.ActivityType),
				Status:       db_models.ActivityStatusPlanned,
				Priority:     db_models.PriorityMedium,
				StartDate:    &at,
			}
			act.ID = uuid.New()

			if cost := utils.ParseLenientFloat(ga.EstimatedCost); cost != nil {
				act.Budget = &db_models.Budget{EstimatedCost: *cost, Currency: currency}
			}
			if ga.Location != "" || ga.Address != "" || len(ga.Coordinates) > 0 {
				lat, lng := utils.ParseCoordinates(ga.Coordinates)
				act.Location = &db_models.Location{
					Name:      ga.Location,
					Address:   ga.Address,
					Latitude:  lat,
					Longitude: lng,
				}
			}
			out = append(out, act)
		}
	}
	return out
}

// IsGenerationFailure reports whether err is a failed-generation result
// rather than a transport problem.
func IsGenerationFailure(err error) bool {
	var gf *GenerationFailedError
	return errors.As(err, &gf)
}
