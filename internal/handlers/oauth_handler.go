package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "budgetwise/internal/errors"
	"budgetwise/internal/services"
)

// OAuthHandler handles the social login flow. The SPA drives the redirect:
// it fetches the provider URL, sends the user there, and posts the code it
// receives back.
type OAuthHandler struct {
	providers   map[string]services.OAuthExchanger
	userService services.UserServicer
	authHandler *AuthHandler
}

// NewOAuthHandler creates a new OAuthHandler for the given providers.
func NewOAuthHandler(userService services.UserServicer, authHandler *AuthHandler, providers ...services.OAuthExchanger) *OAuthHandler {
	byName := make(map[string]services.OAuthExchanger, len(providers))
	for _, provider := range providers {
		byName[provider.Name()] = provider
	}
	return &OAuthHandler{
		providers:   byName,
		userService: userService,
		authHandler: authHandler,
	}
}

// CallbackRequest carries the authorization code from the provider redirect.
type CallbackRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *OAuthHandler) provider(c *gin.Context) (services.OAuthExchanger, error) {
	name := c.Param("provider")
	provider, ok := h.providers[name]
	if !ok {
		return nil, apperrors.WithMessage(apperrors.ErrNotFound, "Unknown provider: "+name)
	}
	return provider, nil
}

// Redirect returns the provider's authorization URL.
// @Summary     Get the provider authorization URL
// @Tags        auth
// @Produce     json
// @Param       provider path string true "OAuth provider (google or facebook)"
// @Success     200 {object} Response
// @Failure     404 {object} Response "Unknown provider"
// @Router      /auth/{provider} [get]
func (h *OAuthHandler) Redirect(c *gin.Context) {
	provider, err := h.provider(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	state := uuid.New().String()
	respondSuccess(c, http.StatusOK, "Redirect URL generated", gin.H{
		"redirect_url": provider.AuthURL(state),
		"state":        state,
	})
}

// Callback exchanges the authorization code, resolves the identity to a
// local account, and issues a token pair.
// @Summary     Complete the provider login
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       provider path string true "OAuth provider (google or facebook)"
// @Param       request body CallbackRequest true "Authorization code"
// @Success     200 {object} Response{data=TokenResponse}
// @Failure     500 {object} Response "Provider exchange failed"
// @Router      /auth/{provider}/callback [post]
func (h *OAuthHandler) Callback(c *gin.Context) {
	provider, err := h.provider(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	info, err := provider.Exchange(c.Request.Context(), req.Code)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrOAuthFailed, err))
		return
	}

	user, err := h.userService.FindOrCreateOAuthUser(provider.Name(), info)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tokens, err := h.authHandler.issueTokens(user)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Login successful", tokens)
}
