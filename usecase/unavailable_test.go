package usecase

import (
	"context"
	"testing"

	"resourceshub/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

var errConnReset = mongo.CommandError{Code: 6, Message: "connection reset", Labels: []string{"NetworkError"}}

type downResourceRepo struct{ ResourceRepository }

func (downResourceRepo) List(context.Context, model.ResourceFilter, int, int) ([]model.Resource, int64, error) {
	return nil, 0, errConnReset
}

func (downResourceRepo) Create(context.Context, *model.Resource) error { return errConnReset }

type downTodoRepo struct{ TodoRepository }

func (downTodoRepo) GetUserTodos(context.Context, string, *bool) ([]*model.Todo, error) {
	return nil, errConnReset
}

func (downTodoRepo) CreateTodo(context.Context, *model.Todo) error { return errConnReset }

type downPostRepo struct{ PostRepository }

func (downPostRepo) ListPosts(context.Context, int, int) ([]*model.Post, int64, error) {
	return nil, 0, errConnReset
}

func (downPostRepo) CreatePost(context.Context, *model.Post) error { return errConnReset }

type downRecordRepo struct{ RecordRepository }

func (downRecordRepo) GetUserRecords(context.Context, string) ([]*model.LearningRecord, error) {
	return nil, errConnReset
}

func (downRecordRepo) CreateRecord(context.Context, *model.LearningRecord) error { return errConnReset }

type downSubscriberRepo struct{ SubscriberRepository }

func (downSubscriberRepo) FindByEmail(context.Context, string) (*model.Subscriber, error) {
	return nil, errConnReset
}

func (downSubscriberRepo) List(context.Context, *bool) ([]model.Subscriber, error) {
	return nil, errConnReset
}

type downUserRepo struct{ UserRepository }

func (downUserRepo) FindUserByUsername(context.Context, string) (*model.User, error) {
	return nil, errConnReset
}

func TestDatabaseOutageIsReportedAsUnavailable(t *testing.T) {
	ctx := context.Background()
	author := model.AuthUser{ID: "u1", Username: "alice"}

	resources := NewResourceService(stubCatalog{}, downResourceRepo{}, 100)
	todos := NewTodosService(downTodoRepo{})
	forum := NewForumService(downPostRepo{})
	records := NewRecordService(downRecordRepo{})
	subscribers := NewSubscriberService(downSubscriberRepo{})

	users := newFakeUserRepo()
	users.users["u1"] = &model.User{UserID: "u1", Username: "alice", Email: "alice@example.com"}
	profile := NewProfileService(users, downTodoRepo{}, newFakeRecordRepo(), newFakePostRepo(), newFakeSessionRepo(), nil, zerolog.Nop())

	f := newAuthFixture(t)
	f.svc.users = downUserRepo{UserRepository: f.users}

	calls := map[string]func() error{
		"list stored resources": func() error {
			_, err := resources.ListStored(ctx, model.ResourceFilter{}, 1, 10)
			return err
		},
		"create stored resource": func() error {
			_, err := resources.CreateStored(ctx, &model.Resource{Title: "Go", URL: "https://example.com/go"})
			return err
		},
		"list todos": func() error {
			_, err := todos.GetUserTodos(ctx, "u1", "all", "")
			return err
		},
		"create todo": func() error {
			return todos.CreateTodo(ctx, &model.Todo{UserID: "u1", Title: "read"})
		},
		"list posts": func() error {
			_, err := forum.ListPosts(ctx, 1, 10)
			return err
		},
		"create post": func() error {
			_, err := forum.CreatePost(ctx, author, "Hello", "World")
			return err
		},
		"list records": func() error {
			_, err := records.List(ctx, "u1")
			return err
		},
		"start record": func() error {
			_, err := records.Start(ctx, "u1", "r1", "Go", "")
			return err
		},
		"subscribe": func() error {
			_, _, err := subscribers.Subscribe(ctx, "bob@example.com")
			return err
		},
		"list subscribers": func() error {
			_, err := subscribers.List(ctx, nil)
			return err
		},
		"profile stats": func() error {
			_, err := profile.Stats(ctx, "u1")
			return err
		},
		"login": func() error {
			_, err := f.svc.Login(ctx, "alice", testPassword, "", ClientInfo{})
			return err
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, call(), ErrDatabaseUnavailable)
		})
	}
}
