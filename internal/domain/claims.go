package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são os dados do usuário carregados no token emitido pelo serviço de identidade
type Claims struct {
	UserID     int    `json:"user_id"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	UserRoleID int    `json:"user_role_id"`
	jwt.RegisteredClaims
}
