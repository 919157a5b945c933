package mongo

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/repository"
)

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Name == "" || exercise.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise name and trainer ID are required")
	}

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// List returns the trainer's exercises matching filter, sorted by name.
func (r *mongoExerciseRepository) List(ctx context.Context, filter domain.ExerciseFilter) ([]domain.Exercise, error) {
	cursor, err := r.collection.Find(ctx, exerciseQuery(filter), options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func exerciseQuery(f domain.ExerciseFilter) bson.M {
	q := bson.M{"trainerId": f.TrainerID}
	for field, value := range map[string]string{
		"category":    f.Category,
		"muscleGroup": f.MuscleGroup,
		"difficulty":  f.Difficulty,
		"equipment":   f.Equipment,
	} {
		if value != "" {
			q[field] = value
		}
	}
	if f.Search != "" {
		q["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	return q
}

// Update modifies an existing exercise. The owner cannot be changed.
func (r *mongoExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	if exercise.ID == primitive.NilObjectID {
		return errors.New("exercise ID is required for update")
	}
	if exercise.Name == "" {
		return errors.New("exercise name cannot be empty")
	}

	update := bson.M{
		"$set": bson.M{
			"name":             exercise.Name,
			"description":      exercise.Description,
			"category":         exercise.Category,
			"muscleGroup":      exercise.MuscleGroup,
			"difficulty":       exercise.Difficulty,
			"equipment":        exercise.Equipment,
			"executionTechnic": exercise.ExecutionTechnic,
			"videoUrl":         exercise.VideoURL,
			"updatedAt":        time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": exercise.ID, "trainerId": exercise.TrainerID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an exercise owned by trainerID. Exercises of other trainers
// are reported as not found.
func (r *mongoExerciseRepository) Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "trainerId": trainerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoExerciseRepository) Facets(ctx context.Context, trainerID primitive.ObjectID) (*domain.ExerciseFacets, error) {
	filter := bson.M{"trainerId": trainerID}
	var facets domain.ExerciseFacets
	for _, f := range []struct {
		field string
		dst   *[]string
	}{
		{"category", &facets.Categories},
		{"muscleGroup", &facets.MuscleGroups},
		{"difficulty", &facets.DifficultyLevels},
		{"equipment", &facets.EquipmentTypes},
	} {
		values, err := r.collection.Distinct(ctx, f.field, filter)
		if err != nil {
			return nil, err
		}
		*f.dst = distinctStrings(values)
	}
	return &facets, nil
}

// distinctStrings keeps the non-empty string values, sorted.
func distinctStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func exerciseIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "name", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "category", Value: 1}, {Key: "muscleGroup", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	}
}
