package api

import (
	"context"

	"github.com/dmitrijs2005/wcpredict/internal/client/models"
)

// Response is a resolved call: the HTTP status and the decoded body.
type Response[T any] struct {
	Status int
	Data   T
}

type Client interface {
	FetchMatchesWithPredictions(ctx context.Context, token string) (*Response[[]models.Match], error)
	SubmitLogin(ctx context.Context, username, password string) (*Response[models.LoginData], error)
	SubmitLogout(ctx context.Context) (*Response[models.MessageData], error)
	SubmitRegister(ctx context.Context, token, username string) (*Response[models.AccountData], error)
	SubmitResetPassword(ctx context.Context, token, username string) (*Response[models.AccountData], error)
	SubmitDeleteUser(ctx context.Context, token, username string) (*Response[models.MessageData], error)
	SubmitChangePassword(ctx context.Context, token, oldPassword, newPassword string) (*Response[models.MessageData], error)
}
