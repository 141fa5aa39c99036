package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"qcm_backend/internals/configs"
	"qcm_backend/internals/constants"
	userModel "qcm_backend/internals/features/users/user/model"
)

func TestCreateAccessToken(t *testing.T) {
	prev := configs.JWTSecret
	configs.JWTSecret = "test-secret"
	t.Cleanup(func() { configs.JWTSecret = prev })

	user := &userModel.UserModel{
		UserID:   uuid.New(),
		UserName: "ali",
	}

	signed, err := CreateAccessToken(user, constants.RoleModerator)
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}

	token, err := jwt.Parse(signed, func(tok *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token did not verify: %v", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if claims["user_id"] != user.UserID.String() {
		t.Errorf("user_id = %v", claims["user_id"])
	}
	if claims["user_name"] != "ali" {
		t.Errorf("user_name = %v", claims["user_name"])
	}
	if claims["role"] != constants.RoleModerator {
		t.Errorf("role = %v", claims["role"])
	}
}

func TestCreateAccessTokenWithoutSecret(t *testing.T) {
	prev := configs.JWTSecret
	configs.JWTSecret = ""
	t.Cleanup(func() { configs.JWTSecret = prev })

	if _, err := CreateAccessToken(&userModel.UserModel{UserID: uuid.New()}, constants.RoleUser); err == nil {
		t.Fatal("expected error when JWT_SECRET is empty")
	}
}
