package message

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duochat/internal/app/media"
	"duochat/internal/app/user"
	"duochat/internal/pkg/errs"
)

type memoryStore struct {
	mu    sync.Mutex
	users map[string]bool
	msgs  []Message
	clock time.Time
	fail  error
}

func newMemoryStore(userIDs ...string) *memoryStore {
	s := &memoryStore{users: map[string]bool{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	for _, id := range userIDs {
		s.users[id] = true
	}
	return s
}

func (s *memoryStore) Create(_ context.Context, m NewMessage) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return nil, s.fail
	}
	if !s.users[m.ReceiverID] {
		return nil, ErrReceiverNotFound
	}
	s.clock = s.clock.Add(time.Second)
	msg := Message{
		ID:         uuid.NewString(),
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		ImageURL:   m.ImageURL,
		CreatedAt:  s.clock,
	}
	s.msgs = append(s.msgs, msg)
	return &msg, nil
}

func (s *memoryStore) Conversation(_ context.Context, a, b string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Message
	for _, m := range s.msgs {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type memoryDirectory struct {
	users []user.User
	err   error
}

func (d *memoryDirectory) ListExcept(_ context.Context, id string) ([]user.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []user.User
	for _, u := range d.users {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubUploader struct {
	calls int
	err   error
}

func (s *stubUploader) ValidateAndUpload(_ context.Context, payload string, purpose media.Purpose) (string, error) {
	if cErr := media.Validate(payload); cErr != nil {
		return "", cErr
	}
	s.calls++
	if purpose != media.PurposeMessage {
		return "", errors.New("unexpected purpose")
	}
	if s.err != nil {
		return "", s.err
	}
	return "https://cdn.example.com/messages/img.png", nil
}

const testImage = "data:image/png;base64,iVBORw0KGgo="

type fixture struct {
	svc    *Service
	store  *memoryStore
	dir    *memoryDirectory
	images *stubUploader
	u1, u2 string
	u3     string
}

func newFixture() *fixture {
	u1, u2, u3 := uuid.NewString(), uuid.NewString(), uuid.NewString()
	store := newMemoryStore(u1, u2, u3)
	dir := &memoryDirectory{users: []user.User{
		{ID: u1, FullName: "Ada", Email: "ada@x.com", PasswordHash: "$2a$10$hash"},
		{ID: u2, FullName: "Bob", Email: "bob@x.com", PasswordHash: "$2a$10$hash", ProfilePicURL: "https://cdn.example.com/avatars/b.png"},
		{ID: u3, FullName: "Cy", Email: "cy@x.com", PasswordHash: "$2a$10$hash"},
	}}
	images := &stubUploader{}
	return &fixture{
		svc:    NewService(dir, store, images),
		store:  store,
		dir:    dir,
		images: images,
		u1:     u1, u2: u2, u3: u3,
	}
}

func requireCode(t *testing.T, err error, code int) *errs.CustomError {
	t.Helper()
	require.Error(t, err)
	cErr := errs.From(err)
	require.Equal(t, code, cErr.Code, cErr.Message)
	return cErr
}

func TestListOtherUsersExcludesCaller(t *testing.T) {
	f := newFixture()

	users, err := f.svc.ListOtherUsers(context.Background(), f.u1)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, f.u1, u.ID)
	}

	f.dir.err = errors.New("connection refused")
	_, err = f.svc.ListOtherUsers(context.Background(), f.u1)
	cErr := requireCode(t, err, errs.ErrUnknown)
	assert.Equal(t, 500, cErr.Status)
}

func TestSendTextMessage(t *testing.T) {
	f := newFixture()

	msg, err := f.svc.SendMessage(context.Background(), f.u1, f.u2, SendInput{Text: "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, f.u1, msg.SenderID)
	assert.Equal(t, f.u2, msg.ReceiverID)
	assert.Equal(t, "hi", msg.Text)
	assert.Empty(t, msg.ImageURL)
	assert.False(t, msg.CreatedAt.IsZero())
	assert.Zero(t, f.images.calls)
}

func TestSendImageMessage(t *testing.T) {
	f := newFixture()

	msg, err := f.svc.SendMessage(context.Background(), f.u1, f.u2, SendInput{Text: "  ", Image: testImage})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/messages/img.png", msg.ImageURL)
	assert.Empty(t, msg.Text)
	assert.Equal(t, 1, f.images.calls)
}

func TestSendValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SendMessage(ctx, f.u1, f.u2, SendInput{})
	requireCode(t, err, errs.ErrEmptyMessage)

	_, err = f.svc.SendMessage(ctx, f.u1, f.u2, SendInput{Text: " \n\t"})
	requireCode(t, err, errs.ErrEmptyMessage)

	_, err = f.svc.SendMessage(ctx, f.u1, f.u2, SendInput{Text: strings.Repeat("é", MaxTextLength+1)})
	requireCode(t, err, errs.ErrMessageContentTooLong)

	_, err = f.svc.SendMessage(ctx, f.u1, f.u2, SendInput{Text: strings.Repeat("é", MaxTextLength)})
	require.NoError(t, err)

	_, err = f.svc.SendMessage(ctx, f.u1, "not-a-uuid", SendInput{Text: "hi"})
	requireCode(t, err, errs.ErrInvalidUserID)

	_, err = f.svc.SendMessage(ctx, f.u1, uuid.NewString(), SendInput{Text: "hi"})
	cErr := requireCode(t, err, errs.ErrReceiverNotFound)
	assert.Equal(t, errs.KindValidation, cErr.Kind)
}

func TestFailedImageLeavesStoreUnchanged(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.SendMessage(ctx, f.u1, f.u2, SendInput{Text: "first"})
	require.NoError(t, err)
	before := append([]Message(nil), f.store.msgs...)

	_, err = f.svc.SendMessage(ctx, f.u1, f.u2, SendInput{Text: "look", Image: "not-inline"})
	cErr := requireCode(t, err, errs.ErrImageInvalidFormat)
	assert.Equal(t, errs.KindValidation, cErr.Kind)
	assert.Zero(t, f.images.calls)

	f.images.err = errs.NewError(errs.ErrImageUploadFailed).WithDiagnostic("host said no")
	_, err = f.svc.SendMessage(ctx, f.u1, f.u2, SendInput{Text: "look", Image: testImage})
	cErr = requireCode(t, err, errs.ErrImageUploadFailed)
	assert.Equal(t, errs.KindUpload, cErr.Kind)

	f.images.err = errs.NewError(errs.ErrMediaHostMisconfigured)
	_, err = f.svc.SendMessage(ctx, f.u1, f.u2, SendInput{Image: testImage})
	requireCode(t, err, errs.ErrMediaHostMisconfigured)

	assert.Equal(t, before, f.store.msgs)
}

func TestStoreFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.store.fail = errors.New("connection refused")

	_, err := f.svc.SendMessage(context.Background(), f.u1, f.u2, SendInput{Text: "hi"})
	cErr := requireCode(t, err, errs.ErrUnknown)
	assert.Equal(t, errs.KindInternal, cErr.Kind)
}

func TestConversationIsSymmetricAndOrdered(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	empty, err := f.svc.GetConversation(ctx, f.u1, f.u2)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	send := func(from, to, text string) {
		_, err := f.svc.SendMessage(ctx, from, to, SendInput{Text: text})
		require.NoError(t, err)
	}
	send(f.u1, f.u2, "one")
	send(f.u2, f.u1, "two")
	send(f.u1, f.u3, "other")
	send(f.u1, f.u2, "three")

	ab, err := f.svc.GetConversation(ctx, f.u1, f.u2)
	require.NoError(t, err)
	ba, err := f.svc.GetConversation(ctx, f.u2, f.u1)
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
	require.Len(t, ab, 3)
	assert.Equal(t, []string{"one", "two", "three"}, []string{ab[0].Text, ab[1].Text, ab[2].Text})
	for i := 1; i < len(ab); i++ {
		assert.False(t, ab[i].CreatedAt.Before(ab[i-1].CreatedAt))
	}

	none, err := f.svc.GetConversation(ctx, f.u2, f.u3)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.svc.GetConversation(ctx, f.u1, "42")
	requireCode(t, err, errs.ErrInvalidUserID)
}
