package handlers_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/blood_desk_app/internal/apperrors"
	"github.com/SscSPs/blood_desk_app/internal/core/domain"
	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/SscSPs/blood_desk_app/internal/dto"
)

func (s *HandlerTestSuite) loginResult() *portssvc.AuthResult {
	return &portssvc.AuthResult{
		User:      domain.User{UserID: testUserID, Username: testUsername, Role: domain.RoleStaff, CreatedAt: fixedNow},
		Token:     "signed.jwt.token",
		ExpiresAt: fixedNow.Add(12 * time.Hour),
	}
}

func (s *HandlerTestSuite) TestLogin_Success() {
	s.auth.On("Login", mockCtx, testUsername, "secret").Return(s.loginResult(), nil).Once()

	w := s.send(http.MethodPost, "/auth/login", dto.LoginRequest{Username: testUsername, Password: "secret"}, "")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	s.decode(w, &resp)
	s.Equal("signed.jwt.token", resp.Token)
	s.Equal(testUserID, resp.User.ID)
	s.Equal(domain.RoleStaff, resp.User.Role)
	s.True(resp.ExpiresAt.Equal(fixedNow.Add(12 * time.Hour)))
}

func (s *HandlerTestSuite) TestLogin_Errors() {
	testCases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"missing fields", fmt.Errorf("%w: username and password are required", apperrors.ErrValidation), http.StatusBadRequest},
		{"bad credentials", apperrors.ErrAuthentication, http.StatusUnauthorized},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			s.auth.On("Login", mockCtx, "someone", "").Return(nil, tc.serviceErr).Once()

			w := s.send(http.MethodPost, "/auth/login", dto.LoginRequest{Username: "someone"}, "")
			s.Equal(tc.wantStatus, w.Code)
			s.NotEmpty(s.errorMessage(w))
			s.auth.AssertExpectations(s.T())
		})
	}
}

func (s *HandlerTestSuite) TestLogin_MalformedBody() {
	w := s.send(http.MethodPost, "/auth/login", "{not json", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestLogin_RateLimited() {
	s.auth.On("Login", mockCtx, testUsername, "wrong").Return(nil, apperrors.ErrAuthentication).Twice()

	for i := 0; i < 2; i++ {
		w := s.send(http.MethodPost, "/auth/login", dto.LoginRequest{Username: testUsername, Password: "wrong"}, "")
		s.Equal(http.StatusUnauthorized, w.Code)
	}
	w := s.send(http.MethodPost, "/auth/login", dto.LoginRequest{Username: testUsername, Password: "wrong"}, "")
	s.Equal(http.StatusTooManyRequests, w.Code)
}

func (s *HandlerTestSuite) TestMe_ReturnsTokenOwner() {
	user := &domain.User{UserID: testUserID, Username: testUsername, Role: domain.RoleStaff, CreatedAt: fixedNow}
	s.auth.On("GetUser", mockCtx, testUserID).Return(user, nil).Once()

	w := s.do(http.MethodGet, "/api/auth/me", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.UserEnvelope
	s.decode(w, &resp)
	s.Equal(testUserID, resp.User.ID)
	s.Equal(testUsername, resp.User.Username)
	s.auth.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestMe_RequiresToken() {
	w := s.send(http.MethodGet, "/api/auth/me", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.auth.AssertNotCalled(s.T(), "GetUser", mockCtx, testUserID)
}

func (s *HandlerTestSuite) TestMe_DeletedUser() {
	s.auth.On("GetUser", mockCtx, testUserID).Return(nil, fmt.Errorf("failed to get user: %w", apperrors.ErrNotFound)).Once()

	w := s.do(http.MethodGet, "/api/auth/me", nil)
	s.Equal(http.StatusNotFound, w.Code)
}
