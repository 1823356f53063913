package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/MohamedHisham20/media-sharing-platform/internal/models"
	"github.com/MohamedHisham20/media-sharing-platform/internal/repositories"
	"github.com/MohamedHisham20/media-sharing-platform/internal/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository stubs for handler tests. The embedded interface satisfies the
// contract; only the methods a test path reaches are overridden.

type stubUserRepo struct {
	repositories.UserRepository
	users map[string]*models.User
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID.Hex()] = u
	}
	return r
}

func (r *stubUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	r.users[user.ID.Hex()] = user
	return nil
}

func (r *stubUserRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepo) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID.Hex()]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.ID.Hex()] = user
	return nil
}

func (r *stubUserRepo) AddLikedMedia(_ context.Context, userID, mediaID primitive.ObjectID) error {
	r.users[userID.Hex()].LikedMedia = append(r.users[userID.Hex()].LikedMedia, mediaID)
	return nil
}

func (r *stubUserRepo) AddDislikedMedia(_ context.Context, userID, mediaID primitive.ObjectID) error {
	r.users[userID.Hex()].DislikedMedia = append(r.users[userID.Hex()].DislikedMedia, mediaID)
	return nil
}

type stubMediaRepo struct {
	repositories.MediaRepository
	media []models.Media
}

func (r *stubMediaRepo) GetMediaByID(_ context.Context, id string) (*models.Media, error) {
	for i := range r.media {
		if r.media[i].ID.Hex() == id {
			return &r.media[i], nil
		}
	}
	return nil, repositories.ErrMediaNotFound
}

func (r *stubMediaRepo) GetMedia(_ context.Context, _ repositories.MediaFilter, skip, limit int64) ([]models.Media, error) {
	if skip >= int64(len(r.media)) {
		return nil, nil
	}
	end := skip + limit
	if end > int64(len(r.media)) {
		end = int64(len(r.media))
	}
	return r.media[skip:end], nil
}

func (r *stubMediaRepo) CountMedia(_ context.Context, _ repositories.MediaFilter) (int64, error) {
	return int64(len(r.media)), nil
}

func (r *stubMediaRepo) ApplyReactionCounts(_ context.Context, mediaID primitive.ObjectID, likesDelta, dislikesDelta int) (*models.Media, error) {
	for i := range r.media {
		if r.media[i].ID == mediaID {
			r.media[i].Likes += likesDelta
			r.media[i].Dislikes += dislikesDelta
			updated := r.media[i]
			return &updated, nil
		}
	}
	return nil, repositories.ErrMediaNotFound
}

// newTestContext builds an echo context with the request validator wired,
// mirroring the server setup in cmd/server.
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
