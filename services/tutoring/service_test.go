package tutoring

import (
	"testing"

	"tutoria/models"
	"tutoria/services/scheduling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeSessionRepo struct {
	sessions map[string]*models.TutoringSession
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
	var out []models.TutoringSession
	for _, s := range f.sessions {
		if s.Status == models.SessionActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByTutor(tutorID string) ([]models.TutoringSession, error) {
	var out []models.TutoringSession
	for _, s := range f.sessions {
		if s.TutorID == tutorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ApplyReview(string, int) error { return nil }

func (f *fakeSessionRepo) EnsureIndexes() error { return nil }

type fakeReviewRepo struct{}

func (fakeReviewRepo) Create(*models.Review) error { return nil }
func (fakeReviewRepo) ListBySession(string) ([]models.Review, error) {
	return []models.Review{{ID: "r-1", Rating: 5}}, nil
}
func (fakeReviewRepo) EnsureIndexes() error { return nil }

type fakeFavoriteRepo struct {
	favorited map[string]bool // sessionID -> true
}

func (f *fakeFavoriteRepo) Add(*models.Favorite) error      { return nil }
func (f *fakeFavoriteRepo) Remove(_, _ string) error        { return nil }
func (f *fakeFavoriteRepo) Exists(_, sessionID string) (bool, error) {
	return f.favorited[sessionID], nil
}
func (f *fakeFavoriteRepo) ListSessionIDs(string) ([]string, error) {
	var out []string
	for id := range f.favorited {
		out = append(out, id)
	}
	return out, nil
}
func (f *fakeFavoriteRepo) EnsureIndexes() error { return nil }

var tutor = models.Actor{ID: "tutor-1", Role: models.RoleTutor}
var student = models.Actor{ID: "student-1", Role: models.RoleStudent}

func newService(sessions *fakeSessionRepo) *DefaultSessionService {
	return &DefaultSessionService{
		SessionRepo:  sessions,
		ReviewRepo:   fakeReviewRepo{},
		FavoriteRepo: &fakeFavoriteRepo{favorited: map[string]bool{}},
	}
}

func TestCreateSessionNormalizesHours(t *testing.T) {
	svc := newService(newFakeSessionRepo())

	session, err := svc.Create(tutor, models.CreateSessionRequest{
		Title:        "Algebra",
		Subject:      "math",
		PricePerHour: 30000,
		Mode:         models.ModeOnline,
		AvailableHours: map[string]any{
			"monday":  []any{"18:00-22:00", "06:00-10:00", "garbage"},
			"someday": []any{"06:00-10:00"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.SessionActive, session.Status)
	assert.Equal(t, tutor.ID, session.TutorID)
	assert.Equal(t, models.AvailableHours{
		models.Monday: {models.WindowEarlyMorning, models.WindowEvening},
	}, session.AvailableHours)
}

func TestStudentCannotCreateSession(t *testing.T) {
	svc := newService(newFakeSessionRepo())

	_, err := svc.Create(student, models.CreateSessionRequest{Title: "x", Subject: "y"})
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindUnauthorized))
}

func TestUpdateOnlyOwner(t *testing.T) {
	existing := &models.TutoringSession{ID: "s-1", TutorID: tutor.ID, Title: "Old", Status: models.SessionActive}
	svc := newService(newFakeSessionRepo(existing))

	newTitle := "New"
	updated, err := svc.Update(tutor, "s-1", models.UpdateSessionRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)

	_, err = svc.Update(models.Actor{ID: "other", Role: models.RoleTutor}, "s-1", models.UpdateSessionRequest{Title: &newTitle})
	require.Error(t, err)
	assert.True(t, scheduling.IsKind(err, scheduling.KindUnauthorized))
}

func TestUpdateLeavesUnsetFieldsAlone(t *testing.T) {
	existing := &models.TutoringSession{
		ID: "s-1", TutorID: tutor.ID, Title: "Keep", PricePerHour: 10000,
		Status: models.SessionActive,
	}
	svc := newService(newFakeSessionRepo(existing))

	price := int64(20000)
	updated, err := svc.Update(tutor, "s-1", models.UpdateSessionRequest{PricePerHour: &price})
	require.NoError(t, err)
	assert.Equal(t, "Keep", updated.Title)
	assert.Equal(t, int64(20000), updated.PricePerHour)
}

func TestPauseActivateDelete(t *testing.T) {
	sessions := newFakeSessionRepo(&models.TutoringSession{ID: "s-1", TutorID: tutor.ID, Status: models.SessionActive})
	svc := newService(sessions)

	require.NoError(t, svc.Pause(tutor, "s-1"))
	assert.Equal(t, models.SessionPaused, sessions.sessions["s-1"].Status)

	require.NoError(t, svc.Activate(tutor, "s-1"))
	assert.Equal(t, models.SessionActive, sessions.sessions["s-1"].Status)

	require.NoError(t, svc.Delete(tutor, "s-1"))
	assert.Equal(t, models.SessionDeleted, sessions.sessions["s-1"].Status)
}

func TestPauseByNonOwnerFails(t *testing.T) {
	sessions := newFakeSessionRepo(&models.TutoringSession{ID: "s-1", TutorID: tutor.ID, Status: models.SessionActive})
	svc := newService(sessions)

	err := svc.Pause(models.Actor{ID: "other", Role: models.RoleTutor}, "s-1")
	require.Error(t, err)
	assert.Equal(t, models.SessionActive, sessions.sessions["s-1"].Status)
}

func TestGetDecoratesFavorite(t *testing.T) {
	sessions := newFakeSessionRepo(&models.TutoringSession{ID: "s-1", TutorID: tutor.ID, Status: models.SessionActive})
	svc := newService(sessions)
	svc.FavoriteRepo = &fakeFavoriteRepo{favorited: map[string]bool{"s-1": true}}

	view, err := svc.Get("s-1", student.ID)
	require.NoError(t, err)
	assert.True(t, view.IsFavorite)

	anonymous, err := svc.Get("s-1", "")
	require.NoError(t, err)
	assert.False(t, anonymous.IsFavorite)
}

func TestListDecoratesFavorites(t *testing.T) {
	sessions := newFakeSessionRepo(
		&models.TutoringSession{ID: "s-1", TutorID: tutor.ID, Status: models.SessionActive},
		&models.TutoringSession{ID: "s-2", TutorID: tutor.ID, Status: models.SessionActive},
	)
	svc := newService(sessions)
	svc.FavoriteRepo = &fakeFavoriteRepo{favorited: map[string]bool{"s-2": true}}

	views, err := svc.List(models.SessionFilters{}, student.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, v.ID == "s-2", v.IsFavorite)
	}
}
