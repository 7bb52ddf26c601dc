package usecase

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/GregCodi/WarehousePRO/internal/application/dto"
	"github.com/GregCodi/WarehousePRO/internal/application/ports"
	"github.com/GregCodi/WarehousePRO/internal/domain"
	"github.com/GregCodi/WarehousePRO/internal/domain/entity"
	"github.com/GregCodi/WarehousePRO/internal/domain/repository"
)

const minPasswordLen = 6

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo  repository.UserRepository
	clock ports.Clock
	ids   ports.IDGenerator

	// serializa los cambios que pueden dejar al sistema sin administradores
	adminMu sync.Mutex
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, clock ports.Clock, ids ports.IDGenerator) *UserUseCase {
	return &UserUseCase{repo: repo, clock: clock, ids: ids}
}

// Create crea un usuario activo con la contraseña hasheada con bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.NewValidation("username", "requerido")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.NewValidation("password", "debe tener al menos 6 caracteres")
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.NewValidation("role", "rol desconocido: "+in.Role)
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	user := &entity.User{
		ID:           uc.ids.NewID(),
		Username:     username,
		PasswordHash: hash,
		FullName:     in.FullName,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.NewUserResponse(u))
	}
	return items, nil
}

// Update modifica nombre, rol, estado o contraseña. No permite degradar ni desactivar
// al último administrador.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	uc.adminMu.Lock()
	defer uc.adminMu.Unlock()

	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("usuario", id)
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < minPasswordLen {
			return nil, domain.NewValidation("password", "debe tener al menos 6 caracteres")
		}
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	wasAdmin := user.Role == entity.RoleAdmin && user.Active
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.NewValidation("role", "rol desconocido: "+*in.Role)
		}
		user.Role = *in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	if wasAdmin && (user.Role != entity.RoleAdmin || !user.Active) {
		if err := uc.ensureAnotherAdmin(ctx, id); err != nil {
			return nil, err
		}
	}
	user.UpdatedAt = uc.clock.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// Delete elimina un usuario; el último administrador no se puede borrar.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	uc.adminMu.Lock()
	defer uc.adminMu.Unlock()

	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFound("usuario", id)
	}
	if user.Role == entity.RoleAdmin && user.Active {
		if err := uc.ensureAnotherAdmin(ctx, id); err != nil {
			return err
		}
	}
	return uc.repo.Delete(ctx, id)
}

// ensureAnotherAdmin devuelve ConflictError si id es el único admin activo.
func (uc *UserUseCase) ensureAnotherAdmin(ctx context.Context, id string) error {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.ID != id && u.Role == entity.RoleAdmin && u.Active {
			return nil
		}
	}
	return domain.NewConflict("usuario", id, "es el último administrador")
}

// HashPassword hashea con bcrypt (costo por defecto).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
