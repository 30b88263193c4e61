package auth

import (
	"testing"

	"karate-attendance/app/models"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	user := &models.User{
		ID:    "5f1c9a2e-1d3b-4c8a-9aa1-0f2b3c4d5e6f",
		Email: "sensei@dojo.test",
		Name:  "Sensei Kim",
		Role:  models.RoleInstructor,
	}

	token, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("UserID = %q, want %q", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %q, want %q", claims.Email, user.Email)
	}
	if claims.Role != user.Role {
		t.Errorf("Role = %q, want %q", claims.Role, user.Role)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	const userID = "5f1c9a2e-1d3b-4c8a-9aa1-0f2b3c4d5e6f"

	token, err := GenerateRefreshJWT(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshJWT: %v", err)
	}

	claims, err := ValidateRefreshJWT(token)
	if err != nil {
		t.Fatalf("ValidateRefreshJWT: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %q, want %q", claims.UserID, userID)
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	// Access and refresh tokens are signed with different secrets, so an
	// access token must not be accepted by the refresh endpoint.
	user := &models.User{
		ID:    "5f1c9a2e-1d3b-4c8a-9aa1-0f2b3c4d5e6f",
		Email: "sensei@dojo.test",
		Name:  "Sensei Kim",
		Role:  models.RoleAdmin,
	}

	token, err := GenerateJWT(user)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ValidateRefreshJWT(token); err == nil {
		t.Error("ValidateRefreshJWT accepted an access token")
	}
}

func TestValidateRefreshJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateRefreshJWT("not-a-token"); err == nil {
		t.Error("ValidateRefreshJWT accepted a malformed token")
	}
}
