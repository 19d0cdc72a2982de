package api

import (
	"context"

	"github.com/pkg/errors"

	"github.com/esther-pixel31/swiftsend-go/httpclient"
)

// UserService covers the /user self-service endpoints.
type UserService struct {
	httpc *httpclient.Client
}

// ProfileUpdate is the subset of the profile a user may edit themselves.
type ProfileUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateProfile edits the user's own name or email.
func (s *UserService) UpdateProfile(ctx context.Context, in ProfileUpdate) (*Profile, error) {
	var out Profile
	if err := s.httpc.Put(ctx, "/user/update", in, &out); err != nil {
		return nil, errors.Wrap(err, "[UserService.UpdateProfile]")
	}
	return &out, nil
}

// ChangePassword rotates the account password. The session tokens stay valid;
// the backend does not revoke them on rotation.
func (s *UserService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	in := changePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := s.httpc.Post(ctx, "/user/change-password", in, nil); err != nil {
		return errors.Wrap(err, "[UserService.ChangePassword]")
	}
	return nil
}

// DeleteAccount permanently removes the account. The caller should Logout
// afterwards; the backend invalidates nothing client side.
func (s *UserService) DeleteAccount(ctx context.Context) error {
	if err := s.httpc.Delete(ctx, "/user/delete", nil); err != nil {
		return errors.Wrap(err, "[UserService.DeleteAccount]")
	}
	return nil
}
