package apiclient

import (
	"net/url"

	"github.com/shoply-dev/shoply/shared/api"
)

func (c *APIClient) Register(req api.RegisterRequest) (api.MessageResponse, error) {
	var resp api.MessageResponse
	err := c.doJSON("POST", "/new", req, "", &resp)
	return resp, err
}

func (c *APIClient) Login(req api.LoginRequest) (api.LoginResponse, error) {
	var resp api.LoginResponse
	err := c.doJSON("POST", "/account/login", req, "", &resp)
	return resp, err
}

func (c *APIClient) DeleteAccount(req api.DeleteAccountRequest) (api.MessageResponse, error) {
	var resp api.MessageResponse
	err := c.doJSON("DELETE", "/account/delete", req, "", &resp)
	return resp, err
}

func (c *APIClient) ResetPassword(req api.ResetPasswordRequest) (api.MessageResponse, error) {
	var resp api.MessageResponse
	err := c.doJSON("PUT", "/account/password/reset", req, "", &resp)
	return resp, err
}

func (c *APIClient) UpdateAccount(req api.UpdateAccountRequest) (api.MessageResponse, error) {
	var resp api.MessageResponse
	err := c.doJSON("PUT", "/account/update", req, "", &resp)
	return resp, err
}

func (c *APIClient) ConfirmEmail(userId, token string) (api.MessageResponse, error) {
	var resp api.MessageResponse
	query := url.Values{"userId": {userId}, "token": {token}}
	err := c.doJSON("GET", "/account/confirmemail?"+query.Encode(), nil, "", &resp)
	return resp, err
}

func (c *APIClient) ResendConfirmation(email string) (api.MessageResponse, error) {
	var resp api.MessageResponse
	err := c.doJSON("POST", "/account/confirmemail/resend", api.ResendConfirmationRequest{Email: email}, "", &resp)
	return resp, err
}
