package main

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/SaiNageswarS/go-mvc-boot/di"
	"github.com/SaiNageswarS/go-mvc-boot/logger"
	"github.com/SaiNageswarS/go-mvc-boot/server"
	"go.uber.org/zap"
)

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
}

// Database is an in-memory user table.
type Database struct {
	users map[int]User
}

func NewDatabase() *Database {
	return &Database{users: map[int]User{
		1: {ID: 1, Name: "ada", Admin: true},
		2: {ID: 2, Name: "linus"},
		3: {ID: 3, Name: "grace", Admin: true},
	}}
}

type UserRepository struct {
	db *Database
}

func NewUserRepository(db *Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) All() []User {
	users := make([]User, 0, len(r.db.users))
	for _, u := range r.db.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (r *UserRepository) Find(id int) (User, bool) {
	u, ok := r.db.users[id]
	return u, ok
}

type UserService interface {
	List() []User
	Get(id int) (User, error)
}

// UserDirectory is the UserService backed by the repository.
type UserDirectory struct {
	repo *UserRepository
}

func NewUserDirectory(repo *UserRepository) *UserDirectory {
	return &UserDirectory{repo: repo}
}

func (s *UserDirectory) List() []User { return s.repo.All() }

func (s *UserDirectory) Get(id int) (User, error) {
	u, ok := s.repo.Find(id)
	if !ok {
		return User{}, server.NewStatusError(http.StatusNotFound, fmt.Sprintf("user %d not found", id))
	}
	return u, nil
}

// AuditTrail is resolved per action call, not per controller.
type AuditTrail struct {
	log *zap.Logger
}

func NewAuditTrail() *AuditTrail {
	return &AuditTrail{log: logger.Get()}
}

func (a *AuditTrail) Record(action string, fields ...zap.Field) {
	a.log.Info("Audit", append(fields, zap.String("action", action))...)
}

type HomeController struct{}

func (c *HomeController) Index() map[string]any {
	return map[string]any{"app": "mvc-boot", "status": "ok"}
}

// AdminUserController is registered as Admin\UserController.
type AdminUserController struct {
	users UserService
}

func NewAdminUserController(users UserService) *AdminUserController {
	return &AdminUserController{users: users}
}

func (c *AdminUserController) List() []User { return c.users.List() }

func (c *AdminUserController) Show(audit *AuditTrail, id int) (User, error) {
	audit.Record("user.show", zap.Int("id", id))
	return c.users.Get(id)
}

func demoBuilder() *server.Builder {
	return server.New().
		Provide(`App\Services\Database`, NewDatabase).
		Provide(`App\Repositories\UserRepository`, NewUserRepository).
		Provide(`App\Services\UserDirectory`, NewUserDirectory).
		Provide(`App\Services\AuditTrail`, NewAuditTrail).
		Bind((*UserService)(nil), `App\Services\UserDirectory`).
		Controller("HomeController", (*HomeController)(nil)).
		Controller(`Admin\UserController`, NewAdminUserController,
			di.WithMethodParams("Show", "audit", "id")).
		Get("/", "HomeController@index").
		Get("/admin/users", `Admin\UserController@list`).
		Get("/admin/users/{id:[0-9]+}", `Admin\UserController@show`).
		Get("/ping", func(params map[string]any) map[string]any {
			return map[string]any{"pong": true, "params": params}
		}).
		Get("/hello/{name}", di.NewFunc(func(name string) string {
			return "hello " + name
		}, "name"))
}
