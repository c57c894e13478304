package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"moneyflow/internal/models/db_models"
	"moneyflow/internal/repositories"
	"moneyflow/pkg/utils"
)

type fakeTripRepo struct {
	mu    sync.Mutex
	trips map[string]*db_models.Trip
	err   error
}

func newFakeTripRepo(trips ...*db_models.Trip) *fakeTripRepo {
	r := &fakeTripRepo{trips: map[string]*db_models.Trip{}}
	for _, t := range trips {
		r.trips[t.ID.String()] = t
	}
	return r
}

func (r *fakeTripRepo) CreateTrip(_ context.Context, trip *db_models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	r.trips[trip.ID.String()] = trip
	return nil
}

func (r *fakeTripRepo) GetTripByID(_ context.Context, tripID string) (*db_models.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.trips[tripID]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.Activities = append([]db_models.Activity(nil), t.Activities...)
	return &cp, nil
}

func (r *fakeTripRepo) ReplaceActivities(_ context.Context, tripID uuid.UUID, deleteAll bool, activities []db_models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.trips[tripID.String()]
	if deleteAll {
		t.Activities = nil
	}
	for _, a := range activities {
		a.TripID = tripID
		t.Activities = append(t.Activities, a)
	}
	return nil
}

func (r *fakeTripRepo) GetActivity(_ context.Context, tripID string, activityID string) (*db_models.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[tripID]
	if !ok {
		return nil, nil
	}
	for i := range t.Activities {
		if t.Activities[i].ID.String() == activityID {
			a := t.Activities[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeTripRepo) SetCheckIn(_ context.Context, tripID string, activityID string, checkedIn bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[tripID]
	if !ok {
		return false, nil
	}
	for i := range t.Activities {
		if t.Activities[i].ID.String() == activityID {
			t.Activities[i].CheckedIn = checkedIn
			return true, nil
		}
	}
	return false, nil
}

type fakeExpenseRepo struct {
	expenses []db_models.Expense
}

func (r *fakeExpenseRepo) CreateExpense(_ context.Context, e *db_models.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses = append(r.expenses, *e)
	return nil
}

func (r *fakeExpenseRepo) ListCandidateExpenses(_ context.Context, tripID uuid.UUID, memberIDs []string) ([]db_models.Expense, error) {
	var out []db_models.Expense
	for _, e := range r.expenses {
		if e.TripID != nil && *e.TripID == tripID {
			out = append(out, e)
			continue
		}
		for _, m := range memberIDs {
			if e.UserID == m {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

// fakeEditRequestRepo applies resolution effects to the trips of a
// fakeTripRepo so approval side effects can be asserted.
type fakeEditRequestRepo struct {
	mu       sync.Mutex
	trips    *fakeTripRepo
	requests map[string]*db_models.EditRequest
	listErr  error
	listHook func(ctx context.Context) error
}

func newFakeEditRequestRepo(trips *fakeTripRepo) *fakeEditRequestRepo {
	return &fakeEditRequestRepo{trips: trips, requests: map[string]*db_models.EditRequest{}}
}

func (r *fakeEditRequestRepo) Create(_ context.Context, req *db_models.EditRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.CreatedAt = time.Now().Unix()
	cp := *req
	r.requests[req.ID.String()] = &cp
	return nil
}

func (r *fakeEditRequestRepo) GetByID(_ context.Context, id string) (*db_models.EditRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeEditRequestRepo) ListPendingForOwner(ctx context.Context, ownerID string) ([]db_models.EditRequest, error) {
	if r.listHook != nil {
		if err := r.listHook(ctx); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []db_models.EditRequest
	for _, req := range r.requests {
		t := r.trips.trips[req.TripID.String()]
		if t != nil && t.CreatorID == ownerID && req.IsPending() {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeEditRequestRepo) Resolve(_ context.Context, id uuid.UUID, status db_models.EditRequestStatus, resolvedBy string, effect *repositories.ResolutionEffect) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req := r.requests[id.String()]
	if req == nil || !req.IsPending() {
		return repositories.ErrNotPending
	}
	now := time.Now().Unix()
	req.Status, req.ResolvedBy, req.ResolvedAt = status, resolvedBy, &now

	if effect == nil {
		return nil
	}
	r.trips.mu.Lock()
	defer r.trips.mu.Unlock()
	t := r.trips.trips[req.TripID.String()]
	if effect.PromoteUserID != "" {
		t.Editors = append(t.Editors, effect.PromoteUserID)
	}
	if effect.ActivityID != nil {
		for i := range t.Activities {
			if t.Activities[i].ID != *effect.ActivityID {
				continue
			}
			if v, ok := effect.ActivityFields["title"].(string); ok {
				t.Activities[i].Title = v
			}
			if v, ok := effect.ActivityFields["status"].(db_models.ActivityStatus); ok {
				t.Activities[i].Status = v
			}
		}
	}
	return nil
}

type fakeBackend struct {
	invokeSummary string
	invokeErr     error
	editResp      *utils.EditPlanResponse
	editErr       error

	gotInput   string
	gotHistory []db_models.ConversationMessage
	gotEdit    utils.EditPlanRequest
	invokes    int
	edits      int
}

func (b *fakeBackend) Invoke(_ context.Context, input string, history []db_models.ConversationMessage) (string, error) {
	b.invokes++
	b.gotInput, b.gotHistory = input, history
	return b.invokeSummary, b.invokeErr
}

func (b *fakeBackend) EditPlan(_ context.Context, req utils.EditPlanRequest) (*utils.EditPlanResponse, error) {
	b.edits++
	b.gotEdit = req
	return b.editResp, b.editErr
}

type fakeGenerator struct {
	resp      *utils.TripGenerationResponse
	err       error
	gotPrompt string
	calls     int
}

func (g *fakeGenerator) GenerateTripPlan(_ context.Context, prompt string) (*utils.TripGenerationResponse, error) {
	g.calls++
	g.gotPrompt = prompt
	return g.resp, g.err
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTrip(name, destination, owner string, start, end time.Time) *db_models.Trip {
	t := &db_models.Trip{
		Name:        name,
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		CreatorID:   owner,
	}
	t.ID = uuid.New()
	return t
}
