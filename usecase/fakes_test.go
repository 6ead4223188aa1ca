package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"resourceshub/model"
	"resourceshub/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeResourceRepo struct {
	mu        sync.Mutex
	byURL     map[string]model.Resource
	batches   [][]model.Resource
	failBatch map[int]error
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{byURL: map[string]model.Resource{}, failBatch: map[int]error{}}
}

func (f *fakeResourceRepo) InsertBatch(_ context.Context, resources []model.Resource) (repository.BatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := len(f.batches)
	f.batches = append(f.batches, append([]model.Resource(nil), resources...))
	if err, ok := f.failBatch[idx]; ok {
		return repository.BatchResult{Failed: len(resources)}, err
	}
	var res repository.BatchResult
	for _, r := range resources {
		if _, dup := f.byURL[r.URL]; dup {
			res.Duplicates++
			continue
		}
		r.ID = primitive.NewObjectID()
		f.byURL[r.URL] = r
		res.Inserted++
	}
	return res, nil
}

func (f *fakeResourceRepo) List(_ context.Context, _ model.ResourceFilter, _, _ int) ([]model.Resource, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Resource, 0, len(f.byURL))
	for _, r := range f.byURL {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, int64(len(out)), nil
}

func (f *fakeResourceRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.byURL {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeResourceRepo) Create(_ context.Context, res *model.Resource) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, dup := f.byURL[res.URL]; dup {
		return repository.ErrDuplicate
	}
	res.ID = primitive.NewObjectID()
	f.byURL[res.URL] = *res
	return nil
}

func (f *fakeResourceRepo) Update(_ context.Context, id primitive.ObjectID, res *model.Resource) (*model.Resource, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for url, r := range f.byURL {
		if r.ID == id {
			delete(f.byURL, url)
			res.ID = id
			f.byURL[res.URL] = *res
			return res, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeResourceRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for url, r := range f.byURL {
		if r.ID == id {
			delete(f.byURL, url)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeSubscriberRepo struct {
	subs map[string]*model.Subscriber
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{subs: map[string]*model.Subscriber{}}
}

func (f *fakeSubscriberRepo) FindByEmail(_ context.Context, email string) (*model.Subscriber, error) {
	s, ok := f.subs[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubscriberRepo) Create(_ context.Context, sub *model.Subscriber) error {
	if _, ok := f.subs[sub.Email]; ok {
		return repository.ErrDuplicate
	}
	sub.ID = primitive.NewObjectID()
	cp := *sub
	f.subs[sub.Email] = &cp
	return nil
}

func (f *fakeSubscriberRepo) SetActive(_ context.Context, email string, active bool) (*model.Subscriber, error) {
	s, ok := f.subs[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	s.Active = active
	if active {
		s.SubscriptionDate = time.Now().UTC()
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSubscriberRepo) List(_ context.Context, active *bool) ([]model.Subscriber, error) {
	var out []model.Subscriber
	for _, s := range f.subs {
		if active == nil || s.Active == *active {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) get(userID string) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) copyOf(userID string) (*model.User, error) {
	u, err := f.get(userID)
	if err != nil {
		return nil, err
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) AddUser(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	f.users[user.UserID] = &cp
	return nil
}

func (f *fakeUserRepo) FindUser(_ context.Context, userID string) (*model.User, error) {
	return f.copyOf(userID)
}

func (f *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	for id, u := range f.users {
		if u.Email == email {
			return f.copyOf(id)
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindUserByUsername(_ context.Context, username string) (*model.User, error) {
	for id, u := range f.users {
		if u.Username == username {
			return f.copyOf(id)
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, userID, username, email string) (*model.User, error) {
	u, err := f.get(userID)
	if err != nil {
		return nil, err
	}
	if username != "" {
		u.Username = username
	}
	if email != "" {
		u.Email = email
	}
	return f.copyOf(userID)
}

func (f *fakeUserRepo) UpdatePreferences(_ context.Context, userID string, prefs model.Preferences) (*model.User, error) {
	u, err := f.get(userID)
	if err != nil {
		return nil, err
	}
	u.Preferences = prefs
	return f.copyOf(userID)
}

func (f *fakeUserRepo) AddHistory(_ context.Context, userID string, entry model.HistoryEntry) (*model.User, error) {
	u, err := f.get(userID)
	if err != nil {
		return nil, err
	}
	u.LearningHistory = append([]model.HistoryEntry{entry}, u.LearningHistory...)
	return f.copyOf(userID)
}

func (f *fakeUserRepo) AddBookmark(_ context.Context, userID, resourceID string) (*model.User, error) {
	u, err := f.get(userID)
	if err != nil {
		return nil, err
	}
	for _, b := range u.Bookmarks {
		if b == resourceID {
			return f.copyOf(userID)
		}
	}
	u.Bookmarks = append(u.Bookmarks, resourceID)
	return f.copyOf(userID)
}

func (f *fakeUserRepo) RemoveBookmark(_ context.Context, userID, resourceID string) (*model.User, error) {
	u, err := f.get(userID)
	if err != nil {
		return nil, err
	}
	kept := u.Bookmarks[:0]
	for _, b := range u.Bookmarks {
		if b != resourceID {
			kept = append(kept, b)
		}
	}
	u.Bookmarks = kept
	return f.copyOf(userID)
}

func (f *fakeUserRepo) UpdateUserPassword(_ context.Context, userID, hashed string) error {
	u, err := f.get(userID)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.LastPasswordChange = time.Now()
	return nil
}

func (f *fakeUserRepo) ReplacePasswordHash(_ context.Context, userID, hashed string) error {
	u, err := f.get(userID)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

func (f *fakeUserRepo) SetTwoFactorSecret(_ context.Context, userID, secret string) error {
	u, err := f.get(userID)
	if err != nil {
		return err
	}
	u.TwoFactorSecret = secret
	return nil
}

func (f *fakeUserRepo) Enable2FAWithRecoveryCodes(_ context.Context, userID, secret string, codes []string) error {
	u, err := f.get(userID)
	if err != nil {
		return err
	}
	u.TwoFactorSecret = secret
	u.TwoFactorEnabled = true
	u.RecoveryCodes = codes
	return nil
}

func (f *fakeUserRepo) UpdateRecoveryCodes(_ context.Context, userID string, codes []string) error {
	u, err := f.get(userID)
	if err != nil {
		return err
	}
	u.RecoveryCodes = codes
	return nil
}

func (f *fakeUserRepo) Disable2FA(_ context.Context, userID string) error {
	u, err := f.get(userID)
	if err != nil {
		return err
	}
	u.TwoFactorEnabled = false
	u.TwoFactorSecret = ""
	u.RecoveryCodes = nil
	return nil
}

func (f *fakeUserRepo) DeleteUserByID(_ context.Context, userID string) error {
	if _, err := f.get(userID); err != nil {
		return err
	}
	delete(f.users, userID)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*model.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*model.Session{}}
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, s *model.Session) error {
	cp := *s
	f.sessions[s.SessionID] = &cp
	return nil
}

func (f *fakeSessionRepo) GetSession(_ context.Context, id string) (*model.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) TouchSession(_ context.Context, id string) error {
	s, ok := f.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.LastActivityAt = time.Now()
	return nil
}

func (f *fakeSessionRepo) EndSession(_ context.Context, id string) error {
	s, ok := f.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.IsActive = false
	return nil
}

func (f *fakeSessionRepo) active(userID string) []*model.Session {
	var out []*model.Session
	for _, s := range f.sessions {
		if s.UserID == userID && s.IsActive {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastActivityAt.After(out[j].LastActivityAt) })
	return out
}

func (f *fakeSessionRepo) GetUserActiveSessions(_ context.Context, userID string) ([]*model.Session, error) {
	return f.active(userID), nil
}

func (f *fakeSessionRepo) CountActiveSessions(_ context.Context, userID string) (int, error) {
	return len(f.active(userID)), nil
}

func (f *fakeSessionRepo) CountSessions(_ context.Context, userID string) (int, error) {
	n := 0
	for _, s := range f.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionRepo) EndLeastActiveSession(_ context.Context, userID string) error {
	active := f.active(userID)
	if len(active) == 0 {
		return repository.ErrNotFound
	}
	active[len(active)-1].IsActive = false
	return nil
}

func (f *fakeSessionRepo) EndAllUserSessions(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, s := range f.active(userID) {
		s.IsActive = false
		n++
	}
	return n, nil
}

func (f *fakeSessionRepo) DeleteUserSessions(_ context.Context, userID string) error {
	for id, s := range f.sessions {
		if s.UserID == userID {
			delete(f.sessions, id)
		}
	}
	return nil
}

type fakeTodoRepo struct {
	todos map[string]*model.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: map[string]*model.Todo{}}
}

func (f *fakeTodoRepo) CreateTodo(_ context.Context, todo *model.Todo) error {
	cp := *todo
	f.todos[todo.TodoID] = &cp
	return nil
}

func (f *fakeTodoRepo) GetUserTodos(_ context.Context, userID string, completed *bool) ([]*model.Todo, error) {
	var out []*model.Todo
	for _, t := range f.todos {
		if t.UserID != userID || (completed != nil && t.Completed != *completed) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTodoRepo) GetTodo(_ context.Context, userID, todoID string) (*model.Todo, error) {
	t, ok := f.todos[todoID]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTodoRepo) UpdateTodo(_ context.Context, userID, todoID string, upd model.TodoUpdate) (*model.Todo, error) {
	t, ok := f.todos[todoID]
	if !ok || t.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.DueDate != nil {
		t.DueDate = upd.DueDate
	} else if upd.ClearDueDate {
		t.DueDate = nil
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}
	if upd.RelatedRecordID != nil {
		t.RelatedRecordID = *upd.RelatedRecordID
	}
	t.UpdatedAt = time.Now()
	cp := *t
	return &cp, nil
}

func (f *fakeTodoRepo) DeleteTodo(_ context.Context, userID, todoID string) error {
	t, ok := f.todos[todoID]
	if !ok || t.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.todos, todoID)
	return nil
}

func (f *fakeTodoRepo) DeleteUserTodos(_ context.Context, userID string) error {
	for id, t := range f.todos {
		if t.UserID == userID {
			delete(f.todos, id)
		}
	}
	return nil
}

type fakePostRepo struct {
	posts map[string]*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*model.Post{}}
}

func (f *fakePostRepo) CreatePost(_ context.Context, post *model.Post) error {
	cp := *post
	f.posts[post.PostID] = &cp
	return nil
}

func (f *fakePostRepo) ListPosts(_ context.Context, page, limit int) ([]*model.Post, int64, error) {
	all := make([]*model.Post, 0, len(f.posts))
	for _, p := range f.posts {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (f *fakePostRepo) GetPost(_ context.Context, id string) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) UpdatePost(_ context.Context, id, title, content string) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Title, p.Content, p.UpdatedAt = title, content, time.Now()
	cp := *p
	return &cp, nil
}

func (f *fakePostRepo) DeletePost(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) CountByAuthor(_ context.Context, authorID string) (int, error) {
	n := 0
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

type fakeRecordRepo struct {
	records map[string]*model.LearningRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[string]*model.LearningRecord{}}
}

func (f *fakeRecordRepo) CreateRecord(_ context.Context, r *model.LearningRecord) error {
	cp := *r
	f.records[r.RecordID] = &cp
	return nil
}

func (f *fakeRecordRepo) GetUserRecords(_ context.Context, userID string) ([]*model.LearningRecord, error) {
	var out []*model.LearningRecord
	for _, r := range f.records {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) GetRecord(_ context.Context, userID, id string) (*model.LearningRecord, error) {
	r, ok := f.records[id]
	if !ok || r.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecordRepo) ReplaceRecord(_ context.Context, r *model.LearningRecord) error {
	existing, ok := f.records[r.RecordID]
	if !ok || existing.UserID != r.UserID {
		return repository.ErrNotFound
	}
	cp := *r
	f.records[r.RecordID] = &cp
	return nil
}

func (f *fakeRecordRepo) DeleteRecord(_ context.Context, userID, id string) error {
	r, ok := f.records[id]
	if !ok || r.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeRecordRepo) DeleteUserRecords(_ context.Context, userID string) error {
	for id, r := range f.records {
		if r.UserID == userID {
			delete(f.records, id)
		}
	}
	return nil
}

var (
	_ ResourceRepository   = (*fakeResourceRepo)(nil)
	_ SubscriberRepository = (*fakeSubscriberRepo)(nil)
	_ UserRepository       = (*fakeUserRepo)(nil)
	_ SessionRepository    = (*fakeSessionRepo)(nil)
	_ TodoRepository       = (*fakeTodoRepo)(nil)
	_ PostRepository       = (*fakePostRepo)(nil)
	_ RecordRepository     = (*fakeRecordRepo)(nil)
)
