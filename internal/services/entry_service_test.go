package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/timesheet-tracker/backend/internal/apperr"
	"github.com/timesheet-tracker/backend/internal/models"
	"github.com/timesheet-tracker/backend/internal/repositories"
	"go.uber.org/zap"
)

// Mock implementations

type mockEntryStore struct {
	mock.Mock
	repositories.EntryStore
}

func (m *mockEntryStore) WithTx(tx pgx.Tx) repositories.EntryStore { return m }

func (m *mockEntryStore) Create(ctx context.Context, e *models.TimesheetEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *mockEntryStore) GetForReview(ctx context.Context, id int64) (*models.TimesheetEntry, *int64, error) {
	args := m.Called(ctx, id)
	var entry *models.TimesheetEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*models.TimesheetEntry)
	}
	var managerID *int64
	if args.Get(1) != nil {
		managerID = args.Get(1).(*int64)
	}
	return entry, managerID, args.Error(2)
}

func (m *mockEntryStore) Update(ctx context.Context, id int64, u repositories.EntryUpdate) (*models.TimesheetEntry, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimesheetEntry), args.Error(1)
}

func (m *mockEntryStore) MarkSubmitted(ctx context.Context, id int64) (*models.TimesheetEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimesheetEntry), args.Error(1)
}

func (m *mockEntryStore) MarkReviewed(ctx context.Context, id int64, status string, reviewerID int64, comments string) (*models.TimesheetEntry, error) {
	args := m.Called(ctx, id, status, reviewerID, comments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimesheetEntry), args.Error(1)
}

func (m *mockEntryStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProjectStore struct {
	mock.Mock
	repositories.ProjectStore
}

func (m *mockProjectStore) WithTx(tx pgx.Tx) repositories.ProjectStore { return m }

func (m *mockProjectStore) IsAssigned(ctx context.Context, projectID, userID int64) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

type mockAuditStore struct {
	mock.Mock
	repositories.AuditStore
}

func (m *mockAuditStore) WithTx(tx pgx.Tx) repositories.AuditStore { return m }

func (m *mockAuditStore) Record(ctx context.Context, entry models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type mockApprovalStore struct {
	mock.Mock
	repositories.ApprovalStore
}

func (m *mockApprovalStore) WithTx(tx pgx.Tx) repositories.ApprovalStore { return m }

func (m *mockApprovalStore) Record(ctx context.Context, l *models.ApprovalLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// stubTx satisfies pgx.Tx for the commit/rollback paths the service drives;
// the store mocks never touch the connection.
type stubTx struct{ pgx.Tx }

func (stubTx) Commit(context.Context) error   { return nil }
func (stubTx) Rollback(context.Context) error { return nil }

type stubPool struct{}

func (stubPool) Begin(context.Context) (pgx.Tx, error) { return stubTx{}, nil }

type stubLimits struct{ limits models.EntryLimits }

func (s stubLimits) EntryLimits(context.Context) (models.EntryLimits, error) {
	return s.limits, nil
}

type entryServiceFixture struct {
	entries   *mockEntryStore
	projects  *mockProjectStore
	audits    *mockAuditStore
	approvals *mockApprovalStore
	svc       *EntryService
}

func newEntryServiceFixture() *entryServiceFixture {
	f := &entryServiceFixture{
		entries:   &mockEntryStore{},
		projects:  &mockProjectStore{},
		audits:    &mockAuditStore{},
		approvals: &mockApprovalStore{},
	}
	f.svc = NewEntryService(stubPool{}, f.entries, f.projects, f.audits, f.approvals,
		stubLimits{models.DefaultEntryLimits}, zap.NewNop())
	return f
}

func storedEntry(id, ownerID int64, status string) *models.TimesheetEntry {
	in := validEntryInput()
	return &models.TimesheetEntry{
		ID:          id,
		UserID:      ownerID,
		ProjectID:   in.ProjectID,
		EntryDate:   in.EntryDate,
		Hours:       in.Hours,
		Description: in.Description,
		Status:      status,
	}
}

func TestEntryServiceCreateDuplicateDateConflicts(t *testing.T) {
	f := newEntryServiceFixture()
	actor := Actor{ID: 2, Role: models.RoleEmployee}
	in := validEntryInput()

	f.projects.On("IsAssigned", mock.Anything, in.ProjectID, actor.ID).Return(true, nil)
	f.entries.On("Create", mock.Anything, mock.AnythingOfType("*models.TimesheetEntry")).
		Return(&pgconn.PgError{Code: "23505"})

	_, err := f.svc.Create(context.Background(), actor, in)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict), "got %v", err)
	f.audits.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestEntryServiceCreateUnassignedProjectForbidden(t *testing.T) {
	f := newEntryServiceFixture()
	actor := Actor{ID: 2, Role: models.RoleEmployee}
	in := validEntryInput()

	f.projects.On("IsAssigned", mock.Anything, in.ProjectID, actor.ID).Return(false, nil)

	_, err := f.svc.Create(context.Background(), actor, in)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "got %v", err)
	f.entries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEntryServiceCreateHoursAboveLimitNeverHitsStore(t *testing.T) {
	f := newEntryServiceFixture()
	in := validEntryInput()
	in.Hours = 13 // default max_hours_per_day is 12

	_, err := f.svc.Create(context.Background(), Actor{ID: 2, Role: models.RoleEmployee}, in)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "got %v", err)
	f.projects.AssertNotCalled(t, "IsAssigned", mock.Anything, mock.Anything, mock.Anything)
	f.entries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestEntryServiceDeleteNonDraftRefused(t *testing.T) {
	f := newEntryServiceFixture()
	actor := Actor{ID: 2, Role: models.RoleEmployee}

	f.entries.On("GetForReview", mock.Anything, int64(5)).
		Return(storedEntry(5, actor.ID, models.EntryStatusSubmitted), (*int64)(nil), nil)

	err := f.svc.Delete(context.Background(), actor, 5)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidTransition), "got %v", err)

	e := apperr.From(err)
	assert.Equal(t, models.EntryStatusSubmitted, e.CurrentState)

	// The row must survive a refused delete.
	f.entries.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.audits.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestEntryServiceRejectRequiresComments(t *testing.T) {
	f := newEntryServiceFixture()

	_, err := f.svc.Reject(context.Background(), Actor{ID: 3, Role: models.RoleManager}, 5, "")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "got %v", err)
	f.entries.AssertNotCalled(t, "GetForReview", mock.Anything, mock.Anything)
}

func TestEntryServiceApproveWritesOneAuditAndOneApproval(t *testing.T) {
	f := newEntryServiceFixture()
	managerID := int64(3)
	actor := Actor{ID: managerID, Role: models.RoleManager}

	submitted := storedEntry(5, 2, models.EntryStatusSubmitted)
	approved := storedEntry(5, 2, models.EntryStatusApproved)

	f.entries.On("GetForReview", mock.Anything, int64(5)).Return(submitted, &managerID, nil)
	f.entries.On("MarkReviewed", mock.Anything, int64(5), models.EntryStatusApproved, managerID, "Approved").
		Return(approved, nil)
	f.approvals.On("Record", mock.Anything, mock.AnythingOfType("*models.ApprovalLog")).Return(nil)
	f.audits.On("Record", mock.Anything, mock.AnythingOfType("models.AuditLog")).Return(nil)

	entry, err := f.svc.Approve(context.Background(), actor, 5, "")
	require.NoError(t, err)
	assert.Equal(t, models.EntryStatusApproved, entry.Status)

	f.approvals.AssertNumberOfCalls(t, "Record", 1)
	f.audits.AssertNumberOfCalls(t, "Record", 1)
}

func TestEntryServiceApproveByWrongManagerForbidden(t *testing.T) {
	f := newEntryServiceFixture()
	ownersManager := int64(3)

	f.entries.On("GetForReview", mock.Anything, int64(5)).
		Return(storedEntry(5, 2, models.EntryStatusSubmitted), &ownersManager, nil)

	_, err := f.svc.Approve(context.Background(), Actor{ID: 4, Role: models.RoleManager}, 5, "")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "got %v", err)
	f.entries.AssertNotCalled(t, "MarkReviewed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.approvals.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}

func TestEntryServiceRejectEditResubmit(t *testing.T) {
	f := newEntryServiceFixture()
	ownerID := int64(2)
	managerID := int64(3)
	owner := Actor{ID: ownerID, Role: models.RoleEmployee}
	manager := Actor{ID: managerID, Role: models.RoleManager}

	submitted := storedEntry(5, ownerID, models.EntryStatusSubmitted)
	rejected := storedEntry(5, ownerID, models.EntryStatusRejected)
	edited := storedEntry(5, ownerID, models.EntryStatusRejected)
	edited.Hours = 6
	resubmitted := storedEntry(5, ownerID, models.EntryStatusSubmitted)
	resubmitted.Hours = 6

	f.audits.On("Record", mock.Anything, mock.AnythingOfType("models.AuditLog")).Return(nil)

	// Reject
	f.entries.On("GetForReview", mock.Anything, int64(5)).Return(submitted, &managerID, nil).Once()
	f.entries.On("MarkReviewed", mock.Anything, int64(5), models.EntryStatusRejected, managerID, "needs detail").
		Return(rejected, nil).Once()
	f.approvals.On("Record", mock.Anything, mock.AnythingOfType("*models.ApprovalLog")).Return(nil).Once()

	entry, err := f.svc.Reject(context.Background(), manager, 5, "needs detail")
	require.NoError(t, err)
	assert.Equal(t, models.EntryStatusRejected, entry.Status)

	// Edit while rejected
	hours := 6.0
	f.entries.On("GetForReview", mock.Anything, int64(5)).Return(rejected, &managerID, nil).Once()
	f.entries.On("Update", mock.Anything, int64(5), repositories.EntryUpdate{Hours: &hours}).
		Return(edited, nil).Once()

	entry, err = f.svc.Update(context.Background(), owner, 5, UpdateEntryInput{Hours: &hours})
	require.NoError(t, err)
	assert.Equal(t, 6.0, entry.Hours)

	// Resubmit
	f.entries.On("GetForReview", mock.Anything, int64(5)).Return(edited, &managerID, nil).Once()
	f.entries.On("MarkSubmitted", mock.Anything, int64(5)).Return(resubmitted, nil).Once()

	entry, err = f.svc.Submit(context.Background(), owner, 5)
	require.NoError(t, err)
	assert.Equal(t, models.EntryStatusSubmitted, entry.Status)

	// One audit record per mutation, one approval record for the review.
	f.audits.AssertNumberOfCalls(t, "Record", 3)
	f.approvals.AssertNumberOfCalls(t, "Record", 1)
}

func TestEntryServiceSubmitApprovedEntryRefused(t *testing.T) {
	f := newEntryServiceFixture()
	actor := Actor{ID: 2, Role: models.RoleEmployee}

	f.entries.On("GetForReview", mock.Anything, int64(5)).
		Return(storedEntry(5, actor.ID, models.EntryStatusApproved), (*int64)(nil), nil)

	_, err := f.svc.Submit(context.Background(), actor, 5)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidTransition), "got %v", err)
	f.entries.AssertNotCalled(t, "MarkSubmitted", mock.Anything, mock.Anything)
}

func TestEntryServiceDeleteMissingEntryNotFound(t *testing.T) {
	f := newEntryServiceFixture()

	f.entries.On("GetForReview", mock.Anything, int64(99)).Return(nil, nil, pgx.ErrNoRows)

	err := f.svc.Delete(context.Background(), Actor{ID: 2, Role: models.RoleEmployee}, 99)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "got %v", err)
}
