package posts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rcnprime.ru/economy-core/internal/common"
	"rcnprime.ru/economy-core/internal/features/economy"
)

// fakePostStore хранит посты в памяти и воспроизводит
// условные переходы статуса репозитория.
type fakePostStore struct {
	nextID int64
	posts  map[int64]*Post
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{nextID: 1, posts: make(map[int64]*Post)}
}

func (f *fakePostStore) Create(_ context.Context, p *Post) (int64, error) {
	id := f.nextID
	f.nextID++
	cp := *p
	cp.ID = id
	f.posts[id] = &cp
	return id, nil
}

func (f *fakePostStore) GetByID(_ context.Context, id int64) (*Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, common.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePostStore) Approve(_ context.Context, id int64) (*Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, common.ErrPostNotFound
	}
	if p.Status != StatusPending {
		return nil, common.ErrPostNotPending
	}
	p.Status = StatusActive
	cp := *p
	return &cp, nil
}

func (f *fakePostStore) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	var count int64
	for _, p := range f.posts {
		if p.Status == StatusActive && !p.ExpiresAt.After(now) {
			p.Status = StatusExpired
			count++
		}
	}
	return count, nil
}

func (f *fakePostStore) ListActive(_ context.Context, limit int) ([]*Post, error) {
	var out []*Post
	for _, p := range f.posts {
		if p.Status == StatusActive && len(out) < limit {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeRecorder копит события журнала.
type fakeRecorder struct {
	events []string
}

func (f *fakeRecorder) Record(_ context.Context, _ int64, txType string, _ int64, _ map[string]any) error {
	f.events = append(f.events, txType)
	return nil
}

const testTTL = 7 * 24 * time.Hour

func TestCreate_PendingWithTTL(t *testing.T) {
	store := newFakePostStore()
	rec := &fakeRecorder{}
	svc := NewService(store, rec, testTTL)

	before := time.Now().UTC()
	post, err := svc.Create(context.Background(), 1, KindHiring,
		"Нужен скриптер", "Долгосрочный проект", []string{"Scripter", "Builder"}, "100-500")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, post.Status)
	assert.Equal(t, []string{"Scripter", "Builder"}, post.Skills)
	require.NotNil(t, post.PriceRange)
	assert.Equal(t, "100-500", *post.PriceRange)

	// Срок жизни — ровно 7 дней от создания
	assert.Equal(t, post.CreatedAt.Add(testTTL), post.ExpiresAt)
	assert.False(t, post.ExpiresAt.Before(before.Add(testTTL)))

	// Создание пишет событие в журнал
	assert.Equal(t, []string{economy.TxTypePostCreated}, rec.events)
}

func TestCreate_FiltersUnknownSkills(t *testing.T) {
	svc := NewService(newFakePostStore(), &fakeRecorder{}, testTTL)

	post, err := svc.Create(context.Background(), 1, KindForHire,
		"Моделлер ищет заказы", "", []string{"Основатель", "Modeler", "хакер"}, "")
	require.NoError(t, err)

	// Неизвестные навыки отброшены, известные сохранили порядок
	assert.Equal(t, []string{"Modeler"}, post.Skills)
	assert.Nil(t, post.PriceRange)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakePostStore(), &fakeRecorder{}, testTTL)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, "auction", "Заголовок", "", []string{"Scripter"}, "")
	assert.ErrorIs(t, err, common.ErrInvalidPostKind)

	_, err = svc.Create(ctx, 1, KindHiring, "   ", "", []string{"Scripter"}, "")
	assert.ErrorIs(t, err, common.ErrEmptyTitle)

	// Ни один навык не прошёл справочник — пост не создаётся
	_, err = svc.Create(ctx, 1, KindHiring, "Заголовок", "", []string{"телепат"}, "")
	assert.ErrorIs(t, err, common.ErrInvalidSkill)
}

func TestApprove_Transitions(t *testing.T) {
	store := newFakePostStore()
	rec := &fakeRecorder{}
	svc := NewService(store, rec, testTTL)
	ctx := context.Background()

	post, err := svc.Create(ctx, 1, KindHiring, "Заголовок", "", []string{"Scripter"}, "")
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, 99, post.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, approved.Status)
	assert.Contains(t, rec.events, economy.TxTypePostApproved)

	// Повторное одобрение — ошибка: пост уже не pending
	_, err = svc.Approve(ctx, 99, post.ID)
	assert.ErrorIs(t, err, common.ErrPostNotPending)

	// Несуществующий пост отличим от неподходящего статуса
	_, err = svc.Approve(ctx, 99, 12345)
	assert.ErrorIs(t, err, common.ErrPostNotFound)
}

func TestSweep_ExpiresOnlyDueActive(t *testing.T) {
	store := newFakePostStore()
	svc := NewService(store, &fakeRecorder{}, testTTL)
	ctx := context.Background()
	now := time.Now().UTC()

	// Активный и просроченный — должен истечь
	store.posts[1] = &Post{ID: 1, Status: StatusActive, ExpiresAt: now.Add(-time.Hour)}
	// Активный, срок не вышел — остаётся
	store.posts[2] = &Post{ID: 2, Status: StatusActive, ExpiresAt: now.Add(time.Hour)}
	// Просроченный, но всё ещё pending — чистка его не трогает
	store.posts[3] = &Post{ID: 3, Status: StatusPending, ExpiresAt: now.Add(-time.Hour)}
	store.nextID = 4

	count, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, StatusExpired, store.posts[1].Status)
	assert.Equal(t, StatusActive, store.posts[2].Status)
	assert.Equal(t, StatusPending, store.posts[3].Status)

	// Повторная чистка ничего не находит
	count, err = svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestListActive(t *testing.T) {
	store := newFakePostStore()
	svc := NewService(store, &fakeRecorder{}, testTTL)
	ctx := context.Background()

	post, err := svc.Create(ctx, 1, KindHiring, "Заголовок", "", []string{"Scripter"}, "")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, 99, post.ID)
	require.NoError(t, err)

	// Второй пост остаётся pending и в витрину не попадает
	_, err = svc.Create(ctx, 2, KindForHire, "Ещё один", "", []string{"Tester"}, "")
	require.NoError(t, err)

	active, err := svc.ListActive(ctx, 0)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, post.ID, active[0].ID)
}
