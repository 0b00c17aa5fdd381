package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"storefront_back_end/internal/auth"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/repository"
	repomocks "storefront_back_end/internal/repository/mocks"
)

func TestAuthHandler_Login(t *testing.T) {
	secret := []byte("test_secret")
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	stored := models.User{ID: "u1", Email: "asha@example.com", Password: hash, Role: "customer"}

	testCases := []struct {
		name     string
		body     gin.H
		before   func(users *repomocks.MockUserRepository)
		wantCode int
	}{
		{
			name: "identifiants valides",
			body: gin.H{"email": "asha@example.com", "password": "s3cret"},
			before: func(users *repomocks.MockUserRepository) {
				users.EXPECT().GetByEmail(gomock.Any(), "asha@example.com").Return(stored, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name: "mauvais mot de passe",
			body: gin.H{"email": "asha@example.com", "password": "nope"},
			before: func(users *repomocks.MockUserRepository) {
				users.EXPECT().GetByEmail(gomock.Any(), "asha@example.com").Return(stored, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "email inconnu",
			body: gin.H{"email": "x@example.com", "password": "s3cret"},
			before: func(users *repomocks.MockUserRepository) {
				users.EXPECT().GetByEmail(gomock.Any(), "x@example.com").Return(models.User{}, repository.ErrNotFound)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "champs manquants",
			body:     gin.H{"email": "asha@example.com"},
			before:   func(*repomocks.MockUserRepository) {},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := repomocks.NewMockUserRepository(ctrl)
			tc.before(users)

			gin.SetMode(gin.TestMode)
			server := gin.New()
			server.POST("/api/auth/login", NewAuthHandler(users, secret).Login)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			server.ServeHTTP(resp, req)
			require.Equal(t, tc.wantCode, resp.Code)

			if tc.wantCode == http.StatusOK {
				var got struct {
					Token string          `json:"token"`
					User  json.RawMessage `json:"user"`
				}
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
				claims, err := auth.ParseToken(secret, got.Token)
				require.NoError(t, err)
				assert.Equal(t, "u1", claims.UserID)
				assert.NotContains(t, string(got.User), "password")
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := repomocks.NewMockUserRepository(ctrl)
	users.EXPECT().Get(gomock.Any(), "u1").Return(models.User{ID: "u1", Name: "Asha", Phone: "999"}, nil)

	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.GET("/api/users/me", asUser("u1"), NewAuthHandler(users, nil).Me)

	resp := httptest.NewRecorder()
	server.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"Asha"`)
}
