package service

import (
	"context"
	"os"
	"time"

	"support-routing-be/internal/dto"
	"support-routing-be/internal/entity"
	"support-routing-be/internal/repository/specification"
	"support-routing-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RegisterOperator(ctx context.Context, req *dto.RegisterOperatorRequest) (*dto.RegisterOperatorResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory) IAuthService {
	return &authService{uowFactory: uowFactory}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	operator, err := uow.OperatorRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	expiresAt := time.Now().Add(tokenTTL)
	claims := jwt.MapClaims{
		"operator_id": operator.Id.String(),
		"role":        operator.Role,
		"exp":         expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET_KEY")))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     signedToken,
		ExpiresAt: expiresAt,
		Operator: dto.Operator{
			Id:    operator.Id,
			Email: operator.Email,
			Name:  operator.Name,
			Role:  operator.Role,
		},
	}, nil
}

func (s *authService) RegisterOperator(ctx context.Context, req *dto.RegisterOperatorRequest) (*dto.RegisterOperatorResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.OperatorRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fiber.NewError(fiber.StatusConflict, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	operator := &entity.Operator{
		Id:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    time.Now(),
	}

	if err := uow.OperatorRepository().Create(ctx, operator); err != nil {
		return nil, err
	}

	return &dto.RegisterOperatorResponse{Id: operator.Id}, nil
}
