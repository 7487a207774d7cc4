package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/yamdb/review-api/internal/core/domain"
	"github.com/yamdb/review-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories sharing one store, mirroring the SQL constraints
// the Postgres adapter relies on.
// ---------------------------------------------------------------------------

type memStore struct {
	nextID     int64
	users      map[int64]*domain.User
	categories map[string]*domain.Category
	genres     map[string]*domain.Genre
	titles     map[int64]*domain.Title
	reviews    map[int64]*domain.Review
	comments   map[int64]*domain.Comment
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[int64]*domain.User),
		categories: make(map[string]*domain.Category),
		genres:     make(map[string]*domain.Genre),
		titles:     make(map[int64]*domain.Title),
		reviews:    make(map[int64]*domain.Review),
		comments:   make(map[int64]*domain.Comment),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func paginate[T any](items []T, p ports.Page) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if p.Limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

type stubUserRepo struct{ *memStore }

func (r stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return domain.ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	u.ID = r.id()
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r stubUserRepo) List(_ context.Context, search string, p ports.Page) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		if search != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(search)) {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, p), int64(len(out)), nil
}

func (r stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for _, existing := range r.users {
		if existing.ID != u.ID && existing.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	for rid, rv := range r.reviews {
		if rv.AuthorID == id {
			r.deleteReview(rid)
		}
	}
	for cid, c := range r.comments {
		if c.AuthorID == id {
			delete(r.comments, cid)
		}
	}
	return nil
}

func (m *memStore) deleteReview(id int64) {
	delete(m.reviews, id)
	for cid, c := range m.comments {
		if c.ReviewID == id {
			delete(m.comments, cid)
		}
	}
}

type stubCategoryRepo struct{ *memStore }

func (r stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	if _, ok := r.categories[c.Slug]; ok {
		return domain.ErrSlugTaken
	}
	c.ID = r.id()
	clone := *c
	r.categories[c.Slug] = &clone
	return nil
}

func (r stubCategoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Category, error) {
	c, ok := r.categories[slug]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r stubCategoryRepo) List(_ context.Context, search string, p ports.Page) ([]domain.Category, int64, error) {
	var out []domain.Category
	for _, c := range r.categories {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, p), int64(len(out)), nil
}

func (r stubCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	c, ok := r.categories[slug]
	if !ok {
		return domain.ErrCategoryNotFound
	}
	for _, t := range r.titles {
		if t.Category.ID == c.ID {
			return domain.ErrCategoryInUse
		}
	}
	delete(r.categories, slug)
	return nil
}

type stubGenreRepo struct{ *memStore }

func (r stubGenreRepo) Create(_ context.Context, g *domain.Genre) error {
	if _, ok := r.genres[g.Slug]; ok {
		return domain.ErrSlugTaken
	}
	g.ID = r.id()
	clone := *g
	r.genres[g.Slug] = &clone
	return nil
}

func (r stubGenreRepo) GetBySlug(_ context.Context, slug string) (*domain.Genre, error) {
	g, ok := r.genres[slug]
	if !ok {
		return nil, domain.ErrGenreNotFound
	}
	clone := *g
	return &clone, nil
}

func (r stubGenreRepo) GetBySlugs(ctx context.Context, slugs []string) ([]domain.Genre, error) {
	out := make([]domain.Genre, 0, len(slugs))
	for _, s := range slugs {
		g, err := r.GetBySlug(ctx, s)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, nil
}

func (r stubGenreRepo) List(_ context.Context, search string, p ports.Page) ([]domain.Genre, int64, error) {
	var out []domain.Genre
	for _, g := range r.genres {
		if search == "" || strings.Contains(strings.ToLower(g.Name), strings.ToLower(search)) {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, p), int64(len(out)), nil
}

func (r stubGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	g, ok := r.genres[slug]
	if !ok {
		return domain.ErrGenreNotFound
	}
	delete(r.genres, slug)
	for _, t := range r.titles {
		kept := t.Genres[:0]
		for _, tg := range t.Genres {
			if tg.ID != g.ID {
				kept = append(kept, tg)
			}
		}
		t.Genres = kept
	}
	return nil
}

type stubTitleRepo struct{ *memStore }

func (r stubTitleRepo) rating(titleID int64) *int {
	var scores []int
	for _, rv := range r.reviews {
		if rv.TitleID == titleID {
			scores = append(scores, rv.Score)
		}
	}
	return domain.RoundRating(scores)
}

func (r stubTitleRepo) Create(_ context.Context, t *domain.Title) error {
	t.ID = r.id()
	clone := *t
	clone.Genres = append([]domain.Genre(nil), t.Genres...)
	r.titles[t.ID] = &clone
	return nil
}

func (r stubTitleRepo) Get(_ context.Context, id int64) (*domain.Title, error) {
	t, ok := r.titles[id]
	if !ok {
		return nil, domain.ErrTitleNotFound
	}
	clone := *t
	clone.Genres = append([]domain.Genre(nil), t.Genres...)
	clone.Rating = r.rating(id)
	return &clone, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r stubTitleRepo) List(ctx context.Context, f ports.TitleFilter) ([]*domain.Title, int64, error) {
	var out []*domain.Title
	for id, t := range r.titles {
		if f.Category != "" && !containsFold(t.Category.Slug, f.Category) {
			continue
		}
		if f.Year != 0 && t.Year != f.Year {
			continue
		}
		if f.Name != "" && !containsFold(t.Name, f.Name) {
			continue
		}
		if f.Genre != "" {
			found := false
			for _, g := range t.Genres {
				found = found || containsFold(g.Slug, f.Genre)
			}
			if !found {
				continue
			}
		}
		clone, _ := r.Get(ctx, id)
		out = append(out, clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, f.Page), int64(len(out)), nil
}

func (r stubTitleRepo) Update(_ context.Context, t *domain.Title) error {
	if _, ok := r.titles[t.ID]; !ok {
		return domain.ErrTitleNotFound
	}
	clone := *t
	clone.Rating = nil
	r.titles[t.ID] = &clone
	return nil
}

func (r stubTitleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.titles[id]; !ok {
		return domain.ErrTitleNotFound
	}
	delete(r.titles, id)
	for rid, rv := range r.reviews {
		if rv.TitleID == id {
			r.deleteReview(rid)
		}
	}
	return nil
}

type stubReviewRepo struct{ *memStore }

// Create emulates the unique_title_author constraint.
func (r stubReviewRepo) Create(_ context.Context, rv *domain.Review) error {
	for _, existing := range r.reviews {
		if existing.TitleID == rv.TitleID && existing.AuthorID == rv.AuthorID {
			return domain.ErrDuplicateReview
		}
	}
	rv.ID = r.id()
	clone := *rv
	r.reviews[rv.ID] = &clone
	return nil
}

func (r stubReviewRepo) Get(_ context.Context, titleID, reviewID int64) (*domain.Review, error) {
	rv, ok := r.reviews[reviewID]
	if !ok || rv.TitleID != titleID {
		return nil, domain.ErrReviewNotFound
	}
	clone := *rv
	return &clone, nil
}

func (r stubReviewRepo) ListByTitle(_ context.Context, titleID int64, p ports.Page) ([]*domain.Review, int64, error) {
	var out []*domain.Review
	for _, rv := range r.reviews {
		if rv.TitleID == titleID {
			clone := *rv
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, p), int64(len(out)), nil
}

func (r stubReviewRepo) Update(_ context.Context, rv *domain.Review) error {
	if _, ok := r.reviews[rv.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	clone := *rv
	r.reviews[rv.ID] = &clone
	return nil
}

func (r stubReviewRepo) Delete(ctx context.Context, titleID, reviewID int64) error {
	if _, err := r.Get(ctx, titleID, reviewID); err != nil {
		return err
	}
	r.deleteReview(reviewID)
	return nil
}

func (r stubReviewRepo) Rating(_ context.Context, titleID int64) (*int, error) {
	return stubTitleRepo(r).rating(titleID), nil
}

type stubCommentRepo struct{ *memStore }

func (r stubCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	c.ID = r.id()
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r stubCommentRepo) Get(_ context.Context, reviewID, commentID int64) (*domain.Comment, error) {
	c, ok := r.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, domain.ErrCommentNotFound
	}
	clone := *c
	return &clone, nil
}

func (r stubCommentRepo) ListByReview(_ context.Context, reviewID int64, p ports.Page) ([]*domain.Comment, int64, error) {
	var out []*domain.Comment
	for _, c := range r.comments {
		if c.ReviewID == reviewID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PubDate.Equal(out[j].PubDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].PubDate.After(out[j].PubDate)
	})
	return paginate(out, p), int64(len(out)), nil
}

func (r stubCommentRepo) Update(_ context.Context, c *domain.Comment) error {
	if _, ok := r.comments[c.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r stubCommentRepo) Delete(ctx context.Context, reviewID, commentID int64) error {
	if _, err := r.Get(ctx, reviewID, commentID); err != nil {
		return err
	}
	delete(r.comments, commentID)
	return nil
}

// ---------------------------------------------------------------------------
// Collaborator stubs
// ---------------------------------------------------------------------------

type stubCodes struct {
	codes  map[int64]string
	issued int
}

func newStubCodes() *stubCodes { return &stubCodes{codes: make(map[int64]string)} }

func (c *stubCodes) Issue(_ context.Context, userID int64) (string, error) {
	c.issued++
	code := "code-" + string(rune('a'+c.issued))
	c.codes[userID] = code
	return code, nil
}

func (c *stubCodes) Redeem(_ context.Context, userID int64, code string) error {
	if stored, ok := c.codes[userID]; !ok || stored != code {
		return domain.ErrInvalidCredential
	}
	delete(c.codes, userID)
	return nil
}

type stubTokens struct{}

func (stubTokens) Issue(u *domain.User) (ports.TokenPair, error) {
	id := strconv.FormatInt(u.ID, 10)
	return ports.TokenPair{Access: "access:" + id, Refresh: "refresh:" + id}, nil
}

func (stubTokens) Parse(token string, typ ports.TokenType) (*ports.TokenClaims, error) {
	prefix := string(typ) + ":"
	if !strings.HasPrefix(token, prefix) {
		return nil, domain.ErrInvalidCredential
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(token, prefix), 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidCredential
	}
	return &ports.TokenClaims{UserID: id, Type: typ}, nil
}

type stubNotifier struct {
	sent []ports.Message
	err  error
}

func (n *stubNotifier) Send(_ context.Context, msg ports.Message) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

type stubAudit struct {
	events []domain.ModerationEvent
	err    error
}

func (a *stubAudit) Record(_ context.Context, ev domain.ModerationEvent) error {
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, ev)
	return nil
}

var errBoom = errors.New("boom")
