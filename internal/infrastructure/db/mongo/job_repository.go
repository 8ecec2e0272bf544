package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

const jobCollection = "jobs"

// JobRepository stores the reference gateway's jobs.
type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(jobCollection)}
}

type mongoJob struct {
	ID               string     `bson:"_id"`
	Title            string     `bson:"title"`
	Description      string     `bson:"description"`
	Status           string     `bson:"status"`
	DueDate          time.Time  `bson:"due_date"`
	CreatedAt        time.Time  `bson:"created_at"`
	SalespersonID    string     `bson:"salesperson_id"`
	SupportHandlerID string     `bson:"support_handler_id,omitempty"`
	CompletedAt      *time.Time `bson:"completed_at,omitempty"`
	WorkDurationDays *int       `bson:"work_duration_days,omitempty"`
	OverdueDays      *int       `bson:"overdue_days,omitempty"`
}

func (r *JobRepository) Insert(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	doc := fromDomainJob(*job)
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	created := doc.toDomain()
	return &created, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	var mj mongoJob
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mj); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	job := mj.toDomain()
	return &job, nil
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	doc := fromDomainJob(*job)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrJobNotFound
	}
	updated := doc.toDomain()
	return &updated, nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context) ([]domain.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []domain.Job
	for cur.Next(ctx) {
		var mj mongoJob
		if err := cur.Decode(&mj); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, mj.toDomain())
	}
	return jobs, cur.Err()
}

func fromDomainJob(j domain.Job) mongoJob {
	return mongoJob{
		ID:               j.ID,
		Title:            j.Title,
		Description:      j.Description,
		Status:           string(j.Status),
		DueDate:          j.DueDate.UTC(),
		CreatedAt:        j.CreatedAt.UTC(),
		SalespersonID:    j.SalespersonID,
		SupportHandlerID: j.SupportHandlerID,
		CompletedAt:      j.CompletedAt,
		WorkDurationDays: j.WorkDurationDays,
		OverdueDays:      j.OverdueDays,
	}
}

func (mj mongoJob) toDomain() domain.Job {
	job := domain.Job{
		ID:               mj.ID,
		Title:            mj.Title,
		Description:      mj.Description,
		Status:           domain.JobStatus(mj.Status),
		DueDate:          mj.DueDate.UTC(),
		CreatedAt:        mj.CreatedAt.UTC(),
		SalespersonID:    mj.SalespersonID,
		SupportHandlerID: mj.SupportHandlerID,
		WorkDurationDays: mj.WorkDurationDays,
		OverdueDays:      mj.OverdueDays,
	}
	if mj.CompletedAt != nil {
		t := mj.CompletedAt.UTC()
		job.CompletedAt = &t
	}
	return job
}
