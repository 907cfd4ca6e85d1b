package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/CUknot/forum_backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("a user with that username already exists")
)

// Store wraps a gorm handle with one query method per use case.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over an open, migrated database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that share the connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// containsPattern builds a LIKE pattern matching q anywhere, with q's own
// wildcards escaped. Callers fold both sides in SQL with
// LOWER(column) LIKE LOWER(?) ESCAPE '\' so the same lower() applies to each.
func containsPattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}

func lookupErr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}

func mustExist(tx *gorm.DB, model interface{}, id uint, what string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up %s: %w", what, err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// Users

// CreateUser inserts a new user. The password is hashed by the model hook.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UserByID retrieves a user by ID.
func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, lookupErr(err, "user")
	}
	return &user, nil
}

// UserByUsername retrieves a user by exact username. Usernames are stored
// lowercase, so callers normalise before looking up.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, lookupErr(err, "user")
	}
	return &user, nil
}

// Topics

// GetOrCreateTopic returns the topic with the given name, creating it if absent.
func (s *Store) GetOrCreateTopic(ctx context.Context, name string) (*models.Topic, error) {
	var topic models.Topic
	if err := s.db.WithContext(ctx).
		Where(models.Topic{Name: name}).
		FirstOrCreate(&topic).Error; err != nil {
		return nil, fmt.Errorf("failed to get or create topic: %w", err)
	}
	return &topic, nil
}

// Topics lists every topic by name.
func (s *Store) Topics(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	if err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch topics: %w", err)
	}
	return topics, nil
}

// Rooms

func (s *Store) roomQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Topic").
		Preload("Host").
		Preload("Participants")
}

// SearchRooms returns rooms whose topic name, name, description or host
// username contains q, ignoring case. An empty q matches every room.
func (s *Store) SearchRooms(ctx context.Context, q string) ([]models.Room, error) {
	p := containsPattern(q)
	var rooms []models.Room
	err := s.roomQuery(ctx).
		Select("rooms.*").
		Joins("JOIN topics ON topics.id = rooms.topic_id").
		Joins("JOIN users AS hosts ON hosts.id = rooms.host_id").
		Where(`LOWER(topics.name) LIKE LOWER(?) ESCAPE '\' OR LOWER(rooms.name) LIKE LOWER(?) ESCAPE '\' `+
			`OR LOWER(rooms.description) LIKE LOWER(?) ESCAPE '\' OR LOWER(hosts.username) LIKE LOWER(?) ESCAPE '\'`,
			p, p, p, p).
		Order(models.RoomOrder).
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}
	return rooms, nil
}

// RoomByID retrieves a room with its topic, host and participants.
func (s *Store) RoomByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.roomQuery(ctx).First(&room, id).Error; err != nil {
		return nil, lookupErr(err, "room")
	}
	return &room, nil
}

// RoomsForUser lists the rooms hosted by a user.
func (s *Store) RoomsForUser(ctx context.Context, userID uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.roomQuery(ctx).
		Where("host_id = ?", userID).
		Order(models.RoomOrder).
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rooms for user: %w", err)
	}
	return rooms, nil
}

// CreateRoom inserts a room. TopicID and HostID must reference existing rows.
func (s *Store) CreateRoom(ctx context.Context, room *models.Room) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Topic{}, room.TopicID, "topic"); err != nil {
			return err
		}
		if err := mustExist(tx, &models.User{}, room.HostID, "host"); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(room).Error; err != nil {
			return fmt.Errorf("failed to create room: %w", err)
		}
		return nil
	})
}

// UpdateRoom writes the editable fields (name, description, topic) of room.
// Host and participants are never touched here.
func (s *Store) UpdateRoom(ctx context.Context, room *models.Room) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Topic{}, room.TopicID, "topic"); err != nil {
			return err
		}
		room.UpdatedAt = time.Now()
		result := tx.Model(&models.Room{ID: room.ID}).
			Select("name", "description", "topic_id", "updated_at").
			Updates(map[string]interface{}{
				"name":        room.Name,
				"description": room.Description,
				"topic_id":    room.TopicID,
				"updated_at":  room.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update room: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DeleteRoom removes a room together with its messages and participant rows.
func (s *Store) DeleteRoom(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Room{}, id, "room"); err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return fmt.Errorf("failed to delete room messages: %w", err)
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.RoomParticipant{}).Error; err != nil {
			return fmt.Errorf("failed to delete room participants: %w", err)
		}
		if err := tx.Delete(&models.Room{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete room: %w", err)
		}
		return nil
	})
}

// Participants

// ParticipantsForRoom lists the users who joined a room, earliest first.
func (s *Store) ParticipantsForRoom(ctx context.Context, roomID uint) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN room_participants ON room_participants.user_id = users.id").
		Where("room_participants.room_id = ?", roomID).
		Order("room_participants.created_at ASC, users.id ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch participants: %w", err)
	}
	return users, nil
}

// IsParticipant reports whether userID is in the room's participant set.
func (s *Store) IsParticipant(ctx context.Context, roomID, userID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.RoomParticipant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check participant: %w", err)
	}
	return count > 0, nil
}

func addParticipant(tx *gorm.DB, roomID, userID uint) error {
	rp := models.RoomParticipant{RoomID: roomID, UserID: userID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rp).Error; err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

// Messages

// CreateMessage stores a message and adds its author to the room's
// participants. This is the only write path for messages, so the participant
// set always covers every author.
func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Room{}, msg.RoomID, "room"); err != nil {
			return err
		}
		if err := mustExist(tx, &models.User{}, msg.UserID, "user"); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(msg).Error; err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		return addParticipant(tx, msg.RoomID, msg.UserID)
	})
}

// MessageByID retrieves a message with its author and room.
func (s *Store) MessageByID(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	if err := s.db.WithContext(ctx).Preload("User").Preload("Room").First(&msg, id).Error; err != nil {
		return nil, lookupErr(err, "message")
	}
	return &msg, nil
}

// DeleteMessage removes a single message. Participation is left as is.
func (s *Store) DeleteMessage(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Message{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MessagesForRoom lists a room's messages, newest first.
func (s *Store) MessagesForRoom(ctx context.Context, roomID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Preload("User").
		Order(models.MessageOrder).
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messages, nil
}

// MessagesForUser lists a user's messages across all rooms, newest first.
func (s *Store) MessagesForUser(ctx context.Context, userID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("User").
		Preload("Room").
		Order(models.MessageOrder).
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages for user: %w", err)
	}
	return messages, nil
}

// MessagesForTopicQuery lists messages whose room's topic name contains q,
// ignoring case, newest first.
func (s *Store) MessagesForTopicQuery(ctx context.Context, q string) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.WithContext(ctx).
		Select("messages.*").
		Joins("JOIN rooms ON rooms.id = messages.room_id").
		Joins("JOIN topics ON topics.id = rooms.topic_id").
		Where(`LOWER(topics.name) LIKE LOWER(?) ESCAPE '\'`, containsPattern(q)).
		Preload("User").
		Preload("Room").
		Order(models.MessageOrder).
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch activity: %w", err)
	}
	return messages, nil
}
