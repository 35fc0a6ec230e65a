package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akinalp/vitrin/models"
	"github.com/akinalp/vitrin/pkg"
	"github.com/akinalp/vitrin/repository"
	"github.com/akinalp/vitrin/ws"
	"github.com/google/uuid"
)

// Test fake'leri — repository interface'lerinin in-memory implementasyonları.
// Gerçek DB yerine map tutarlar; InTx fn'i doğrudan çağırır (rollback
// simüle edilmez, hata path'leri ayrı ayrı test edilir).

type fakeHub struct {
	mu     sync.Mutex
	events []ws.Event
}

func (f *fakeHub) BroadcastToAll(event ws.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeHub) BroadcastToUser(userID string, event ws.Event) {
	f.BroadcastToAll(event)
}

func (f *fakeHub) GetOnlineUserIDs() []string { return nil }

func (f *fakeHub) lastEvent() (ws.Event, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.events) == 0 {
		return ws.Event{}, false
	}
	return f.events[len(f.events)-1], true
}

// ─── rating ───

type fakeRatingRepo struct {
	products map[string]bool
	ratings  map[string]*models.Rating // key: productID + "|" + userID
	totals   map[string]int

	// updateStarRows nil değilse UpdateStar bu değeri döner —
	// "kayıt iki adım arasında silindi" senaryosunu simüle eder.
	updateStarRows *int64
}

func newFakeRatingRepo(productIDs ...string) *fakeRatingRepo {
	f := &fakeRatingRepo{
		products: make(map[string]bool),
		ratings:  make(map[string]*models.Rating),
		totals:   make(map[string]int),
	}
	for _, id := range productIDs {
		f.products[id] = true
	}
	return f
}

func ratingKey(productID, userID string) string { return productID + "|" + userID }

func (f *fakeRatingRepo) InTx(ctx context.Context, fn func(repository.RatingRepository) error) error {
	return fn(f)
}

func (f *fakeRatingRepo) ProductExists(ctx context.Context, productID string) (bool, error) {
	return f.products[productID], nil
}

func (f *fakeRatingRepo) GetByProductAndUser(ctx context.Context, productID, userID string) (*models.Rating, error) {
	r, ok := f.ratings[ratingKey(productID, userID)]
	if !ok {
		return nil, fmt.Errorf("%w: rating not found", pkg.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRatingRepo) UpdateStar(ctx context.Context, productID, userID string, star int) (int64, error) {
	if f.updateStarRows != nil {
		return *f.updateStarRows, nil
	}
	r, ok := f.ratings[ratingKey(productID, userID)]
	if !ok {
		return 0, nil
	}
	r.Star = star
	return 1, nil
}

func (f *fakeRatingRepo) Insert(ctx context.Context, rating *models.Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}
	cp := *rating
	f.ratings[ratingKey(rating.ProductID, rating.PostedBy)] = &cp
	return nil
}

func (f *fakeRatingRepo) ListByProduct(ctx context.Context, productID string) ([]models.Rating, error) {
	var out []models.Rating
	for _, r := range f.ratings {
		if r.ProductID == productID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) SetTotalRating(ctx context.Context, productID string, totalRating int) error {
	f.totals[productID] = totalRating
	return nil
}

// ─── product ───

type fakeProductRepo struct {
	products map[string]*models.Product
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[string]*models.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product not found", pkg.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) List(ctx context.Context, query *models.ProductQuery) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) Count(ctx context.Context, query *models.ProductQuery) (int, error) {
	return len(f.products), nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *models.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return fmt.Errorf("%w: product not found", pkg.ErrNotFound)
	}
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return fmt.Errorf("%w: product not found", pkg.ErrNotFound)
	}
	delete(f.products, id)
	return nil
}

// ─── reaction ───

type fakeReactionRepo struct {
	blogs     map[string]bool
	reactions map[string]models.ReactionKind // key: blogID + "|" + userID
}

func newFakeReactionRepo(blogIDs ...string) *fakeReactionRepo {
	f := &fakeReactionRepo{
		blogs:     make(map[string]bool),
		reactions: make(map[string]models.ReactionKind),
	}
	for _, id := range blogIDs {
		f.blogs[id] = true
	}
	return f
}

func (f *fakeReactionRepo) InTx(ctx context.Context, fn func(repository.ReactionRepository) error) error {
	return fn(f)
}

func (f *fakeReactionRepo) BlogExists(ctx context.Context, blogID string) (bool, error) {
	return f.blogs[blogID], nil
}

func (f *fakeReactionRepo) Get(ctx context.Context, blogID, userID string) (models.ReactionKind, bool, error) {
	kind, ok := f.reactions[blogID+"|"+userID]
	return kind, ok, nil
}

func (f *fakeReactionRepo) Set(ctx context.Context, blogID, userID string, kind models.ReactionKind) error {
	f.reactions[blogID+"|"+userID] = kind
	return nil
}

func (f *fakeReactionRepo) Delete(ctx context.Context, blogID, userID string) error {
	delete(f.reactions, blogID+"|"+userID)
	return nil
}

// likes ve dislikes, fake state'ten kümeleri türetir —
// blogRepo.GetByID dönüşünde Likes/Dislikes alanlarını doldurmak için.
func (f *fakeReactionRepo) likes(blogID string) []string {
	return f.kindMembers(blogID, models.ReactionLike)
}

func (f *fakeReactionRepo) dislikes(blogID string) []string {
	return f.kindMembers(blogID, models.ReactionDislike)
}

func (f *fakeReactionRepo) kindMembers(blogID string, kind models.ReactionKind) []string {
	var out []string
	for key, k := range f.reactions {
		if k != kind {
			continue
		}
		if len(key) > len(blogID) && key[:len(blogID)] == blogID && key[len(blogID)] == '|' {
			out = append(out, key[len(blogID)+1:])
		}
	}
	return out
}

// ─── blog ───

type fakeBlogRepo struct {
	blogs map[string]*models.Blog
	// reactionState nil değilse GetByID tepki kümelerini oradan türetir.
	reactionState *fakeReactionRepo
	viewCounts    map[string]int
}

func newFakeBlogRepo(blogs ...*models.Blog) *fakeBlogRepo {
	f := &fakeBlogRepo{
		blogs:      make(map[string]*models.Blog),
		viewCounts: make(map[string]int),
	}
	for _, b := range blogs {
		f.blogs[b.ID] = b
	}
	return f
}

func (f *fakeBlogRepo) Create(ctx context.Context, blog *models.Blog) error {
	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}
	cp := *blog
	f.blogs[blog.ID] = &cp
	return nil
}

func (f *fakeBlogRepo) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	b, ok := f.blogs[id]
	if !ok {
		return nil, fmt.Errorf("%w: blog not found", pkg.ErrNotFound)
	}
	cp := *b
	if f.reactionState != nil {
		cp.Likes = f.reactionState.likes(id)
		cp.Dislikes = f.reactionState.dislikes(id)
	}
	cp.NumViews += f.viewCounts[id]
	return &cp, nil
}

func (f *fakeBlogRepo) GetAll(ctx context.Context) ([]models.Blog, error) {
	var out []models.Blog
	for _, b := range f.blogs {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBlogRepo) Update(ctx context.Context, blog *models.Blog) error {
	if _, ok := f.blogs[blog.ID]; !ok {
		return fmt.Errorf("%w: blog not found", pkg.ErrNotFound)
	}
	cp := *blog
	f.blogs[blog.ID] = &cp
	return nil
}

func (f *fakeBlogRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.blogs[id]; !ok {
		return fmt.Errorf("%w: blog not found", pkg.ErrNotFound)
	}
	delete(f.blogs, id)
	return nil
}

func (f *fakeBlogRepo) IncrementViews(ctx context.Context, id string) error {
	if _, ok := f.blogs[id]; !ok {
		return fmt.Errorf("%w: blog not found", pkg.ErrNotFound)
	}
	f.viewCounts[id]++
	return nil
}

// ─── coupon ───

type fakeCouponRepo struct {
	coupons    map[string]*models.Coupon
	getAllHits int
}

func newFakeCouponRepo() *fakeCouponRepo {
	return &fakeCouponRepo{coupons: make(map[string]*models.Coupon)}
}

func (f *fakeCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	for _, c := range f.coupons {
		if c.Name == coupon.Name {
			return fmt.Errorf("%w: coupon name already exists", pkg.ErrAlreadyExists)
		}
	}
	if coupon.ID == "" {
		coupon.ID = uuid.NewString()
	}
	cp := *coupon
	f.coupons[coupon.ID] = &cp
	return nil
}

func (f *fakeCouponRepo) GetByID(ctx context.Context, id string) (*models.Coupon, error) {
	c, ok := f.coupons[id]
	if !ok {
		return nil, fmt.Errorf("%w: coupon not found", pkg.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCouponRepo) GetAll(ctx context.Context) ([]*models.Coupon, error) {
	f.getAllHits++
	out := make([]*models.Coupon, 0, len(f.coupons))
	for _, c := range f.coupons {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCouponRepo) Update(ctx context.Context, coupon *models.Coupon) error {
	if _, ok := f.coupons[coupon.ID]; !ok {
		return fmt.Errorf("%w: coupon not found", pkg.ErrNotFound)
	}
	cp := *coupon
	f.coupons[coupon.ID] = &cp
	return nil
}

func (f *fakeCouponRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.coupons[id]; !ok {
		return fmt.Errorf("%w: coupon not found", pkg.ErrNotFound)
	}
	delete(f.coupons, id)
	return nil
}

// ─── auth ───

type fakeUserRepo struct {
	users map[string]*models.User // key: id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: user not found", pkg.ErrNotFound)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("%w: user not found", pkg.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int, error) {
	return len(f.users), nil
}

type fakeSessionRepo struct {
	sessions map[string]*models.Session // key: id
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	cp := *session
	f.sessions[session.ID] = &cp
	return nil
}

func (f *fakeSessionRepo) GetByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	for _, s := range f.sessions {
		if s.RefreshToken == refreshToken {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: session not found", pkg.ErrNotFound)
}

func (f *fakeSessionRepo) DeleteByID(ctx context.Context, id string) error {
	if _, ok := f.sessions[id]; !ok {
		return fmt.Errorf("%w: session not found", pkg.ErrNotFound)
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeResetRepo struct {
	tokens map[string]*models.PasswordResetToken // key: tokenHash
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]*models.PasswordResetToken)}
}

func (f *fakeResetRepo) Create(ctx context.Context, token *models.PasswordResetToken) error {
	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	cp := *token
	f.tokens[token.TokenHash] = &cp
	return nil
}

func (f *fakeResetRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error) {
	t, ok := f.tokens[tokenHash]
	if !ok {
		return nil, fmt.Errorf("%w: reset token not found", pkg.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeResetRepo) MarkUsed(ctx context.Context, id string) error {
	for _, t := range f.tokens {
		if t.ID == id {
			if t.UsedAt != nil {
				return fmt.Errorf("%w: token already used", pkg.ErrConflict)
			}
			now := time.Now()
			t.UsedAt = &now
			return nil
		}
	}
	return fmt.Errorf("%w: reset token not found", pkg.ErrNotFound)
}

type fakeEmailSender struct {
	sent    []string // gönderilen plaintext token'lar
	lastTo  string
	failAll bool
}

func (f *fakeEmailSender) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	if f.failAll {
		return fmt.Errorf("resend unavailable")
	}
	f.sent = append(f.sent, token)
	f.lastTo = toEmail
	return nil
}
