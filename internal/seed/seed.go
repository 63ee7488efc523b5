package seed

import (
	"fmt"

	"agora/internal/models"
	"agora/internal/observability"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder populates the database with a connected social mesh: users who
// follow each other, post, comment, like and message.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// Options sizes the generated mesh.
type Options struct {
	Users       int
	Posts       int
	Communities int
}

func DefaultOptions() Options {
	return Options{Users: 50, Posts: 200, Communities: 5}
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll empties every domain table. The cascade order follows the FK
// graph from the leaves up.
func (s *Seeder) ClearAll() error {
	return s.db.Exec("TRUNCATE TABLE audit_log, messages, follows, post_likes, comments, posts, community_members, communities, users CASCADE").Error
}

// Run builds the mesh. Errors abort; partially seeded data is fine to keep
// since every row already passed the schema's own checks.
func (s *Seeder) Run(opts Options) error {
	users, err := s.seedUsers(opts.Users)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.seedFollows(users); err != nil {
		return fmt.Errorf("seed follows: %w", err)
	}
	communities, err := s.seedCommunities(users, opts.Communities)
	if err != nil {
		return fmt.Errorf("seed communities: %w", err)
	}
	posts, err := s.seedPosts(users, communities, opts.Posts)
	if err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	if err := s.seedEngagement(users, posts); err != nil {
		return fmt.Errorf("seed engagement: %w", err)
	}
	if err := s.seedMessages(users); err != nil {
		return fmt.Errorf("seed messages: %w", err)
	}
	observability.Logger.Info("seeding complete",
		"users", len(users), "posts", len(posts), "communities", len(communities))
	return nil
}

func (s *Seeder) seedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		var (
			user *models.User
			err  error
		)
		// Every fifth account gets a Turkish bio for the search corpus.
		if i%5 == 0 {
			user, err = s.factory.CreateUserTurkish()
		} else {
			user, err = s.factory.CreateUser()
		}
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// seedFollows wires each user to a handful of others. Edges to public
// accounts are accepted; edges to private accounts split between pending
// and accepted, matching what the request flow would produce.
func (s *Seeder) seedFollows(users []*models.User) error {
	for i, follower := range users {
		followed := map[uint]bool{follower.ID: true}
		for n := 0; n < 4; n++ {
			target := users[(i+n*7+1)%len(users)]
			if followed[target.ID] {
				continue
			}
			followed[target.ID] = true
			status := models.FollowStatusAccepted
			if target.IsPrivate && n%2 == 0 {
				status = models.FollowStatusPending
			}
			if err := s.factory.CreateFollow(follower, target, status); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedCommunities(users []*models.User, count int) ([]uint, error) {
	ids := make([]uint, 0, count)
	for i := 0; i < count; i++ {
		creator := users[i%len(users)]
		name := fmt.Sprintf("%s %s %d", gofakeit.HackerAdjective(), gofakeit.HackerNoun(), i)
		var result models.CommunityCreationResult
		err := s.db.Raw(
			"SELECT * FROM create_community_with_admin(?, ?, ?, ?)",
			creator.ID, name, gofakeit.Sentence(10), i%3 == 0,
		).Scan(&result).Error
		if err != nil {
			return nil, err
		}
		ids = append(ids, result.CommunityID)

		// A few extra members per community.
		joined := map[uint]bool{creator.ID: true}
		for n := 1; n <= 3; n++ {
			member := users[(i+n*11)%len(users)]
			if joined[member.ID] {
				continue
			}
			joined[member.ID] = true
			err := s.db.Create(&models.CommunityMember{
				CommunityID: result.CommunityID,
				UserID:      member.ID,
				RoleID:      models.RoleMember,
			}).Error
			if err != nil {
				return nil, err
			}
		}
	}
	return ids, nil
}

func (s *Seeder) seedPosts(users []*models.User, communities []uint, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[i%len(users)]
		post, err := s.factory.CreatePost(author, func(p *models.Post) {
			if len(communities) > 0 && i%4 == 0 {
				p.CommunityID = &communities[i%len(communities)]
			}
		})
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) seedEngagement(users []*models.User, posts []*models.Post) error {
	for i, post := range posts {
		liked := map[uint]bool{post.UserID: true}
		for n := 0; n < (i%4)+1; n++ {
			liker := users[(i+n*3)%len(users)]
			if liked[liker.ID] {
				continue
			}
			liked[liker.ID] = true
			if err := s.factory.CreateLike(post, liker); err != nil {
				return err
			}
		}
		if i%3 == 0 {
			commenter := users[(i+1)%len(users)]
			root, err := s.factory.CreateComment(post, commenter, nil)
			if err != nil {
				return err
			}
			if i%6 == 0 {
				replier := users[(i+2)%len(users)]
				if _, err := s.factory.CreateComment(post, replier, root); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *Seeder) seedMessages(users []*models.User) error {
	for i := 0; i+1 < len(users); i += 2 {
		a, b := users[i], users[i+1]
		for n := 0; n < 3; n++ {
			sender, receiver := a, b
			if n%2 == 1 {
				sender, receiver = b, a
			}
			if _, err := s.factory.CreateMessage(sender, receiver); err != nil {
				return err
			}
		}
	}
	return nil
}
