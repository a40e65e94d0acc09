package booking

import (
	"testing"
	"time"

	bookingRepo "tutoria/database/repository/booking"
	reviewRepo "tutoria/database/repository/review"
	"tutoria/models"
	"tutoria/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// --- in-memory fakes ---

type fakeSessionRepo struct {
	sessions map[string]*models.TutoringSession
	reviews  []int
}

func newFakeSessionRepo(sessions ...*models.TutoringSession) *fakeSessionRepo {
	m := make(map[string]*models.TutoringSession)
	for _, s := range sessions {
		m[s.ID] = s
	}
	return &fakeSessionRepo{sessions: m}
}

func (f *fakeSessionRepo) Create(s *models.TutoringSession) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) GetByID(id string) (*models.TutoringSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) Update(s *models.TutoringSession) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) SetStatus(id, tutorID string, status models.SessionStatus) error {
	s, ok := f.sessions[id]
	if !ok || s.TutorID != tutorID {
		return mongo.ErrNoDocuments
	}
	s.Status = status
	return nil
}

func (f *fakeSessionRepo) List(models.SessionFilters) ([]models.TutoringSession, error) {
	return nil, nil
}

func (f *fakeSessionRepo) ListByTutor(string) ([]models.TutoringSession, error) {
	return nil, nil
}

func (f *fakeSessionRepo) ApplyReview(id string, rating int) error {
	f.reviews = append(f.reviews, rating)
	return nil
}

func (f *fakeSessionRepo) EnsureIndexes() error { return nil }

type fakeBookingRepo struct {
	bookings map[string]*models.TutoringBooking

	// forceSlotTaken makes Create fail the way a lost index race does.
	forceSlotTaken bool
	// forceStale makes UpdateStatusIf fail the way a concurrent writer does.
	forceStale bool
}

func newFakeBookingRepo(bookings ...*models.TutoringBooking) *fakeBookingRepo {
	m := make(map[string]*models.TutoringBooking)
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (f *fakeBookingRepo) Create(b *models.TutoringBooking) error {
	if f.forceSlotTaken {
		return bookingRepo.ErrSlotTaken
	}
	for _, existing := range f.bookings {
		if existing.SessionID == b.SessionID && existing.Date == b.Date &&
			existing.StartTime == b.StartTime && existing.Status != models.BookingCancelled {
			return bookingRepo.ErrSlotTaken
		}
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.TutoringBooking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) BookedStartTimes(sessionID, date string) ([]string, error) {
	var out []string
	for _, b := range f.bookings {
		if b.SessionID == sessionID && b.Date == date && b.Status != models.BookingCancelled {
			out = append(out, b.StartTime)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatusIf(id string, from []models.BookingStatus, to models.BookingStatus, stampField string) (*models.TutoringBooking, error) {
	if f.forceStale {
		return nil, bookingRepo.ErrStaleStatus
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	matched := false
	for _, s := range from {
		if b.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return nil, bookingRepo.ErrStaleStatus
	}
	b.Status = to
	now := time.Now().UTC()
	b.UpdatedAt = now
	switch stampField {
	case "confirmed_at":
		b.ConfirmedAt = &now
	case "completed_at":
		b.CompletedAt = &now
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) SetReview(id string, rating int, text string) (*models.TutoringBooking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if b.Status != models.BookingCompleted || b.Rating != nil {
		return nil, bookingRepo.ErrAlreadyReviewed
	}
	b.Rating = &rating
	b.Review = text
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) ListForTutor(tutorID string, _ models.BookingFilters) ([]models.TutoringBooking, error) {
	var out []models.TutoringBooking
	for _, b := range f.bookings {
		if b.TutorID == tutorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListForStudent(studentID string, _ models.BookingFilters) ([]models.TutoringBooking, error) {
	var out []models.TutoringBooking
	for _, b := range f.bookings {
		if b.StudentID == studentID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

type fakeReviewRepo struct {
	created []*models.Review
}

func (f *fakeReviewRepo) Create(r *models.Review) error {
	for _, existing := range f.created {
		if existing.BookingID == r.BookingID {
			return reviewRepo.ErrDuplicateReview
		}
	}
	f.created = append(f.created, r)
	return nil
}

func (f *fakeReviewRepo) ListBySession(string) ([]models.Review, error) { return nil, nil }

func (f *fakeReviewRepo) EnsureIndexes() error { return nil }

// --- fixtures ---

const (
	tutorID   = "tutor-1"
	studentID = "student-1"
	sessionID = "session-1"
)

var tutor = models.Actor{ID: tutorID, Role: models.RoleTutor}
var student = models.Actor{ID: studentID, Role: models.RoleStudent}

// 2025-06-04 is a Wednesday.
const wednesday = "2025-06-04"

func activeSession() *models.TutoringSession {
	return &models.TutoringSession{
		ID:           sessionID,
		TutorID:      tutorID,
		Title:        "Calculus I",
		Subject:      "math",
		PricePerHour: 40000,
		Mode:         models.ModeOnline,
		Status:       models.SessionActive,
		AvailableHours: models.AvailableHours{
			models.Wednesday: {models.WindowLateMorning},
		},
	}
}

func pendingBooking(id string) *models.TutoringBooking {
	return &models.TutoringBooking{
		ID:        id,
		SessionID: sessionID,
		TutorID:   tutorID,
		StudentID: studentID,
		Date:      wednesday,
		StartTime: "11:00",
		Status:    models.BookingPending,
	}
}

func newService(sessions *fakeSessionRepo, bookings *fakeBookingRepo) *DefaultBookingService {
	return &DefaultBookingService{
		SessionRepo: sessions,
		BookingRepo: bookings,
		ReviewRepo:  &fakeReviewRepo{},
	}
}

// --- creation ---

func TestCreateBookingHappyPath(t *testing.T) {
	svc := newService(newFakeSessionRepo(activeSession()), newFakeBookingRepo())

	res, err := svc.Create(student, models.CreateBookingRequest{
		SessionID:       sessionID,
		Date:            wednesday,
		StartTime:       "11:00",
		DurationMinutes: 90,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Booking)

	assert.Equal(t, models.BookingPending, res.Booking.Status)
	assert.Equal(t, int64(60000), res.Booking.TotalPrice)
	assert.Equal(t, models.EventBookingCreated, res.Event.Type)
	assert.Equal(t, res.Booking.ID, res.Event.BookingID)
	assert.NotEmpty(t, res.Booking.ID)
}

func TestCreateBookingSlotAlreadyBooked(t *testing.T) {
	taken := pendingBooking("bk-1")
	svc := newService(newFakeSessionRepo(activeSession()), newFakeBookingRepo(taken))

	_, err := svc.Create(student, models.CreateBookingRequest{
		SessionID:       sessionID,
		Date:            wednesday,
		StartTime:       "11:00",
		DurationMinutes: 60,
	})
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindSlotUnavailable))
}

func TestCreateBookingOutsideAvailability(t *testing.T) {
	svc := newService(newFakeSessionRepo(activeSession()), newFakeBookingRepo())

	// Session only opens the late-morning window on Wednesdays.
	_, err := svc.Create(student, models.CreateBookingRequest{
		SessionID:       sessionID,
		Date:            wednesday,
		StartTime:       "15:00",
		DurationMinutes: 60,
	})
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindSlotUnavailable))
}

func TestCreateBookingLostRaceSurfacesConflict(t *testing.T) {
	bookings := newFakeBookingRepo()
	bookings.forceSlotTaken = true
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	_, err := svc.Create(student, models.CreateBookingRequest{
		SessionID:       sessionID,
		Date:            wednesday,
		StartTime:       "11:00",
		DurationMinutes: 60,
	})
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindSlotConflict))
}

func TestCreateBookingInvalidDuration(t *testing.T) {
	svc := newService(newFakeSessionRepo(activeSession()), newFakeBookingRepo())

	_, err := svc.Create(student, models.CreateBookingRequest{
		SessionID:       sessionID,
		Date:            wednesday,
		StartTime:       "11:00",
		DurationMinutes: 45,
	})
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindSlotUnavailable))
}

func TestCreateBookingPausedSession(t *testing.T) {
	session := activeSession()
	session.Status = models.SessionPaused
	svc := newService(newFakeSessionRepo(session), newFakeBookingRepo())

	_, err := svc.Create(student, models.CreateBookingRequest{
		SessionID:       sessionID,
		Date:            wednesday,
		StartTime:       "11:00",
		DurationMinutes: 60,
	})
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindSlotUnavailable))
}

func TestTutorCannotBookOwnSession(t *testing.T) {
	svc := newService(newFakeSessionRepo(activeSession()), newFakeBookingRepo())

	_, err := svc.Create(models.Actor{ID: tutorID, Role: models.RoleStudent}, models.CreateBookingRequest{
		SessionID:       sessionID,
		Date:            wednesday,
		StartTime:       "11:00",
		DurationMinutes: 60,
	})
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindUnauthorized))
}

func TestCancelledSlotIsBookableAgain(t *testing.T) {
	cancelled := pendingBooking("bk-1")
	cancelled.Status = models.BookingCancelled
	svc := newService(newFakeSessionRepo(activeSession()), newFakeBookingRepo(cancelled))

	res, err := svc.Create(student, models.CreateBookingRequest{
		SessionID:       sessionID,
		Date:            wednesday,
		StartTime:       "11:00",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, res.Booking.Status)
}

// --- transitions ---

func TestConfirmThenComplete(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking("bk-1"))
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	res, err := svc.Confirm(tutor, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, res.Booking.Status)
	assert.NotNil(t, res.Booking.ConfirmedAt)
	assert.Equal(t, models.EventBookingConfirmed, res.Event.Type)

	res, err = svc.Start(tutor, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingInProgress, res.Booking.Status)

	res, err = svc.Complete(tutor, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, res.Booking.Status)
	assert.NotNil(t, res.Booking.CompletedAt)
}

func TestRejectedBookingCannotStart(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking("bk-1"))
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	res, err := svc.Reject(tutor, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, res.Booking.Status)

	_, err = svc.Start(tutor, "bk-1")
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindUnauthorized) ||
		scheduling.IsKind(err, scheduling.KindInvalidTransition))
}

func TestStudentCannotConfirm(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking("bk-1"))
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	_, err := svc.Confirm(student, "bk-1")
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindUnauthorized))
}

func TestStudentCanCancelOwnBooking(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking("bk-1"))
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	res, err := svc.Cancel(student, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, res.Booking.Status)
	assert.Equal(t, models.EventBookingCancelled, res.Event.Type)
}

func TestStrangerCannotTouchBooking(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking("bk-1"))
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	_, err := svc.Cancel(models.Actor{ID: "someone-else", Role: models.RoleStudent}, "bk-1")
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindUnauthorized))
}

func TestNoShowFromConfirmed(t *testing.T) {
	bk := pendingBooking("bk-1")
	bk.Status = models.BookingConfirmed
	bookings := newFakeBookingRepo(bk)
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	res, err := svc.MarkNoShow(tutor, "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingNoShow, res.Booking.Status)
	assert.Equal(t, models.EventBookingNoShow, res.Event.Type)
}

func TestConcurrentTransitionSurfacesInvalidTransition(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking("bk-1"))
	bookings.forceStale = true
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	_, err := svc.Confirm(tutor, "bk-1")
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindInvalidTransition))
}

// --- reviews ---

func TestSubmitReview(t *testing.T) {
	bk := pendingBooking("bk-1")
	bk.Status = models.BookingCompleted
	bookings := newFakeBookingRepo(bk)
	sessions := newFakeSessionRepo(activeSession())
	svc := newService(sessions, bookings)

	updated, err := svc.SubmitReview(student, "bk-1", models.SubmitReviewRequest{Rating: 5, Text: "great"})
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5, *updated.Rating)
	assert.Equal(t, "great", updated.Review)
	assert.Equal(t, []int{5}, sessions.reviews)
}

func TestSubmitReviewTwiceFails(t *testing.T) {
	bk := pendingBooking("bk-1")
	bk.Status = models.BookingCompleted
	bookings := newFakeBookingRepo(bk)
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	_, err := svc.SubmitReview(student, "bk-1", models.SubmitReviewRequest{Rating: 5})
	require.NoError(t, err)

	_, err = svc.SubmitReview(student, "bk-1", models.SubmitReviewRequest{Rating: 4})
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindUnauthorized))
}

func TestTutorCannotReview(t *testing.T) {
	bk := pendingBooking("bk-1")
	bk.Status = models.BookingCompleted
	bookings := newFakeBookingRepo(bk)
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	_, err := svc.SubmitReview(tutor, "bk-1", models.SubmitReviewRequest{Rating: 5})
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindUnauthorized))
}

func TestReviewBeforeCompletionFails(t *testing.T) {
	bk := pendingBooking("bk-1")
	bk.Status = models.BookingConfirmed
	bookings := newFakeBookingRepo(bk)
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	_, err := svc.SubmitReview(student, "bk-1", models.SubmitReviewRequest{Rating: 5})
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindUnauthorized))
}

// --- queries ---

func TestFreeSlotsForDateExcludesBooked(t *testing.T) {
	taken := pendingBooking("bk-1")
	svc := newService(newFakeSessionRepo(activeSession()), newFakeBookingRepo(taken))

	free, err := svc.FreeSlotsForDate(sessionID, wednesday)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "12:00", "13:00"}, free)
}

func TestFreeSlotsForPausedSessionEmpty(t *testing.T) {
	session := activeSession()
	session.Status = models.SessionPaused
	svc := newService(newFakeSessionRepo(session), newFakeBookingRepo())

	free, err := svc.FreeSlotsForDate(sessionID, wednesday)
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestListSplitsByRole(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking("bk-1"))
	svc := newService(newFakeSessionRepo(activeSession()), bookings)

	forTutor, err := svc.List(tutor, models.BookingFilters{})
	require.NoError(t, err)
	assert.Len(t, forTutor, 1)

	forStranger, err := svc.List(models.Actor{ID: "nobody", Role: models.RoleStudent}, models.BookingFilters{})
	require.NoError(t, err)
	assert.Empty(t, forStranger)
}
