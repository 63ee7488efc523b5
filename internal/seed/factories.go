// Package seed provides helpers to create demo and test data for the
// application database. Development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"agora/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them through gorm. Writes go
// through the same migrated schema as production code, so triggers and
// constraints apply to seeded rows too.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a Factory bound to the provided DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seeded accounts all share one password so demo logins are easy.
const seedPassword = "password123"

var seedPasswordHash string

func init() {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	seedPasswordHash = string(hash)
}

func (f *Factory) pastTime(maxDays int) time.Time {
	return time.Now().
		Add(-time.Duration(f.rand.Intn(maxDays*24)) * time.Hour).
		Add(-time.Duration(f.rand.Intn(60)) * time.Minute)
}

// CreateUser persists a user with fake identity data. About a quarter of the
// generated accounts are private so follow requests exercise both paths.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	suffix := uuid.NewString()[:8]
	user := &models.User{
		Username:     fmt.Sprintf("%s_%s", gofakeit.Username(), suffix),
		Email:        fmt.Sprintf("%s_%s@%s", gofakeit.Username(), suffix, gofakeit.DomainName()),
		PasswordHash: seedPasswordHash,
		Bio:          gofakeit.Sentence(8),
		IsPrivate:    f.rand.Intn(4) == 0,
		CreatedAt:    f.pastTime(365),
	}
	if len(user.Username) > 50 {
		user.Username = user.Username[:50]
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUserTurkish persists a user with a Turkish bio, so the bilingual
// search path has content to find.
func (f *Factory) CreateUserTurkish() (*models.User, error) {
	bios := []string{
		"Istanbul'da yasayan bir yazilimci. Kitaplar ve kahve.",
		"Ankara'dan gezgin. Fotograf cekmeyi severim.",
		"Izmir sahillerinde kosucu. Muzik ve deniz.",
		"Kitap kurdu, film elestirmeni, kedi sever.",
	}
	return f.CreateUser(func(u *models.User) {
		u.Bio = bios[f.rand.Intn(len(bios))]
	})
}

// CreatePost persists a post for user. Roughly one in five is media-only.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:    user.ID,
		CreatedAt: f.pastTime(90),
	}
	if f.rand.Intn(5) == 0 {
		media := fmt.Sprintf("https://picsum.photos/seed/%s/800/800", uuid.NewString())
		post.MediaURL = &media
	} else {
		content := gofakeit.Paragraph(1, 3, 8, "\n")
		post.Content = &content
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment, optionally as a reply.
func (f *Factory) CreateComment(post *models.Post, user *models.User, parent *models.Comment) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:    post.ID,
		UserID:    user.ID,
		Content:   gofakeit.Sentence(10),
		CreatedAt: f.pastTime(30),
	}
	if parent != nil {
		comment.ParentCommentID = &parent.ID
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateFollow persists an accepted follow edge.
func (f *Factory) CreateFollow(follower, following *models.User, statusID uint) error {
	return f.db.Create(&models.Follow{
		FollowerID:  follower.ID,
		FollowingID: following.ID,
		StatusID:    statusID,
	}).Error
}

// CreateLike persists a like.
func (f *Factory) CreateLike(post *models.Post, user *models.User) error {
	return f.db.Create(&models.PostLike{PostID: post.ID, UserID: user.ID}).Error
}

// CreateMessage persists a direct message between two users.
func (f *Factory) CreateMessage(sender, receiver *models.User) (*models.Message, error) {
	content := gofakeit.Sentence(12)
	message := &models.Message{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    &content,
		IsRead:     f.rand.Intn(2) == 0,
		CreatedAt:  f.pastTime(14),
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
