package service

import (
	"context"
	"errors"

	"scheme-matcher/internal/models"
	"scheme-matcher/internal/repository/mongodb"
)

// In-memory repository fakes. They mirror the store's semantics
// (duplicate rejection, not-found on delete) without a database.

type fakeUserRepo struct {
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return mongodb.ErrDuplicate
	}
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

type fakeSubmissionRepo struct {
	records []models.SubmissionRecord
	fail    bool
}

func (r *fakeSubmissionRepo) LogSubmission(_ context.Context, record *models.SubmissionRecord) error {
	if r.fail {
		return errors.New("store unavailable")
	}
	r.records = append(r.records, *record)
	return nil
}

type savedKey struct {
	userID   string
	schemeID string
}

type fakeSavedRepo struct {
	saved map[savedKey]models.SavedScheme
	order []savedKey
}

func newFakeSavedRepo() *fakeSavedRepo {
	return &fakeSavedRepo{saved: map[savedKey]models.SavedScheme{}}
}

func (r *fakeSavedRepo) SaveScheme(_ context.Context, saved *models.SavedScheme) error {
	key := savedKey{saved.UserID, saved.SchemeID}
	if _, ok := r.saved[key]; ok {
		return mongodb.ErrDuplicate
	}
	r.saved[key] = *saved
	r.order = append(r.order, key)
	return nil
}

func (r *fakeSavedRepo) Exists(_ context.Context, userID, schemeID string) (bool, error) {
	_, ok := r.saved[savedKey{userID, schemeID}]
	return ok, nil
}

func (r *fakeSavedRepo) ListByUser(_ context.Context, userID string) ([]models.SavedScheme, error) {
	var out []models.SavedScheme
	for _, key := range r.order {
		if key.userID == userID {
			out = append(out, r.saved[key])
		}
	}
	return out, nil
}

func (r *fakeSavedRepo) Delete(_ context.Context, userID, schemeID string) error {
	key := savedKey{userID, schemeID}
	if _, ok := r.saved[key]; !ok {
		return mongodb.ErrNotFound
	}
	delete(r.saved, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
