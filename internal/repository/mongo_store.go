package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"comment-service/internal/domain"
)

const (
	commentsCollection = "comments"
	postsCollection    = "posts"
)

// commentDocument is the stored shape of a comment. Ids are UUID strings.
type commentDocument struct {
	ID      string    `bson:"_id"`
	Content string    `bson:"content"`
	Post    string    `bson:"post"`
	User    string    `bson:"user"`
	Date    time.Time `bson:"date"`
}

// postDocument is the stored shape of a post
type postDocument struct {
	ID        string    `bson:"_id"`
	User      string    `bson:"user"`
	Text      string    `bson:"text"`
	Comments  []string  `bson:"comments"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// bsonTime drops what a BSON date cannot hold so a written time reads back unchanged
func bsonTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func toCommentDocument(c *domain.Comment) commentDocument {
	return commentDocument{
		ID:      c.ID.String(),
		Content: c.Content,
		Post:    c.PostID.String(),
		User:    c.UserID.String(),
		Date:    c.CreatedAt,
	}
}

func (d commentDocument) toDomain() (*domain.Comment, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	postID, err := uuid.Parse(d.Post)
	if err != nil {
		return nil, err
	}
	// comments written by older clients may carry no author
	userID, _ := uuid.Parse(d.User)
	return &domain.Comment{
		ID:        id,
		Content:   d.Content,
		PostID:    postID,
		UserID:    userID,
		CreatedAt: d.Date,
	}, nil
}

func toPostDocument(p *domain.Post) (postDocument, error) {
	ids, err := p.Comments()
	if err != nil {
		return postDocument{}, err
	}
	return postDocument{
		ID:        p.ID.String(),
		User:      p.UserID.String(),
		Text:      p.Text,
		Comments:  uuidStrings(ids),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func (d postDocument) toDomain() (*domain.Post, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	userID, _ := uuid.Parse(d.User)

	ids := make([]uuid.UUID, 0, len(d.Comments))
	for _, raw := range d.Comments {
		commentID, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, commentID)
	}

	post := &domain.Post{
		BaseModel: domain.BaseModel{ID: id, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
		UserID:    userID,
		Text:      d.Text,
	}
	if err := post.SetComments(ids); err != nil {
		return nil, err
	}
	return post, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// mongoStore is the document Store. The two writes of a comment creation
// are separate operations; the relink job repairs a post left behind.
type mongoStore struct {
	client   *mongo.Client
	comments CommentRepository
	posts    PostRepository
}

// NewMongoStore creates a Store backed by MongoDB
func NewMongoStore(client *mongo.Client, db *mongo.Database) Store {
	return &mongoStore{
		client:   client,
		comments: &mongoCommentRepository{coll: db.Collection(commentsCollection)},
		posts:    &mongoPostRepository{coll: db.Collection(postsCollection)},
	}
}

func (s *mongoStore) Comments() CommentRepository { return s.comments }

func (s *mongoStore) Posts() PostRepository { return s.posts }

func (s *mongoStore) Atomic() bool { return false }

func (s *mongoStore) Backend() string { return "mongodb" }

// CreateCommentForPost inserts then pushes. A failed push leaves the comment orphaned.
func (s *mongoStore) CreateCommentForPost(ctx context.Context, comment *domain.Comment) error {
	return createCommentForPost(ctx, s, comment)
}

func (s *mongoStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return fn(ctx, s)
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

type mongoCommentRepository struct {
	coll *mongo.Collection
}

func (r *mongoCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	comment.CreatedAt = bsonTime(comment.CreatedAt)
	_, err := r.coll.InsertOne(ctx, toCommentDocument(comment))
	return err
}

func (r *mongoCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var doc commentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *mongoCommentRepository) FindAll(ctx context.Context) ([]*domain.Comment, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoCommentRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	return r.find(ctx, bson.M{"post": postID.String()})
}

func (r *mongoCommentRepository) find(ctx context.Context, filter bson.M) ([]*domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []commentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	comments := make([]*domain.Comment, 0, len(docs))
	for _, doc := range docs {
		comment, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

func (r *mongoCommentRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

type mongoPostRepository struct {
	coll *mongo.Collection
}

func (r *mongoPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	now := bsonTime(time.Now())
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.CreatedAt = bsonTime(post.CreatedAt)
	post.UpdatedAt = now

	doc, err := toPostDocument(post)
	if err != nil {
		return err
	}
	_, err = r.coll.InsertOne(ctx, doc)
	return err
}

func (r *mongoPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var doc postDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *mongoPostRepository) FindAll(ctx context.Context) ([]*domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	posts := make([]*domain.Post, 0, len(docs))
	for _, doc := range docs {
		post, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// PrependComment pushes at position 0 in a single update. The filter skips
// posts that already hold commentID, so a repeated push is a no-op.
func (r *mongoPostRepository) PrependComment(ctx context.Context, postID, commentID uuid.UUID) error {
	filter := bson.M{
		"_id":      postID.String(),
		"comments": bson.M{"$ne": commentID.String()},
	}
	update := bson.M{
		"$push": bson.M{
			"comments": bson.M{
				"$each":     bson.A{commentID.String()},
				"$position": 0,
			},
		},
		"$set": bson.M{"updated_at": bsonTime(time.Now())},
	}
	matched, err := r.update(ctx, filter, update)
	if err != nil || matched {
		return err
	}
	return r.missing(ctx, postID, nil)
}

// ReplaceComments sets the list only when the stored one still equals previous, element for element
func (r *mongoPostRepository) ReplaceComments(ctx context.Context, postID uuid.UUID, previous, commentIDs []uuid.UUID) error {
	filter := bson.M{
		"_id":      postID.String(),
		"comments": uuidStrings(previous),
	}
	update := bson.M{
		"$set": bson.M{
			"comments":   uuidStrings(commentIDs),
			"updated_at": bsonTime(time.Now()),
		},
	}
	matched, err := r.update(ctx, filter, update)
	if err != nil || matched {
		return err
	}
	return r.missing(ctx, postID, ErrConflict)
}

func (r *mongoPostRepository) update(ctx context.Context, filter, update bson.M) (bool, error) {
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// missing explains an update that matched nothing: ErrNotFound when the post
// is gone, otherwise ifExists.
func (r *mongoPostRepository) missing(ctx context.Context, postID uuid.UUID, ifExists error) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": postID.String()}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ifExists
}

func (r *mongoPostRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
