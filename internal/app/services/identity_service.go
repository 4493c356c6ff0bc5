package services

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/slocalhq/slocal-core/internal/app/errors"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/infrastructures"
)

// IdentityService talks to the external campus identity provider. Tokens are
// resolved per request; no session state is cached here.
type IdentityService struct {
}

func NewIdentityService() *IdentityService {
	return &IdentityService{}
}

func (s *IdentityService) GetCurrentUser(accessToken string) (*models.IdentityUser, error) {
	req, err := http.NewRequest("GET", infrastructures.Config.IDENTITY_BASE_URL+"/users/me", nil)
	if err != nil {
		return nil, err
	}

	if accessToken == "" {
		return nil, errors.NewBadRequestError("Access token is required")
	}

	// Check if accessToken is Bearer token
	if strings.HasPrefix(accessToken, "Bearer ") {
		req.Header.Set("Authorization", accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var webResponse models.WebResponse[models.IdentityUser]
	err = json.NewDecoder(resp.Body).Decode(&webResponse)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAppError(resp.StatusCode, webResponse.Message)
	}

	return &webResponse.Data, nil
}

func (s *IdentityService) GetUser(identityId string) (*models.IdentityUser, error) {
	req, err := http.NewRequest("GET", infrastructures.Config.IDENTITY_BASE_URL+"/users/"+identityId, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var webResponse models.WebResponse[models.IdentityUser]
	err = json.NewDecoder(resp.Body).Decode(&webResponse)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to decode response body")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAppError(resp.StatusCode, webResponse.Message)
	}

	return &webResponse.Data, nil
}
