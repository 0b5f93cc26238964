package chirpd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"chirpterm/domain"
	"chirpterm/infra/auth"
)

// userService implements app.UserService against the chirpd API. The
// current user is derived from the bearer token locally instead of a
// round trip.
type userService struct {
	client *Client
}

// NewUserService creates a UserService backed by chirpd.
func NewUserService(client *Client) *userService {
	return &userService{client: client}
}

type userPayload struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

func (s *userService) User(_ context.Context, id string) (domain.User, bool, error) {
	data, err := s.client.Get("/api/v1/users/" + url.PathEscape(id))
	if errors.Is(err, errNotFound) {
		// Deleted or suspended author: the caller hides the node.
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("fetching user %s: %w", id, err)
	}

	var payload userPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.User{}, false, fmt.Errorf("parsing user: %w", err)
	}
	return domain.User{
		ID:          payload.ID,
		Username:    payload.Username,
		DisplayName: payload.DisplayName,
	}, true, nil
}

func (s *userService) CurrentUserID(_ context.Context) (string, error) {
	token, err := s.client.Token()
	if err != nil {
		return "", err
	}
	return auth.UserIDFromToken(token)
}
