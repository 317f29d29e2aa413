package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aniketsingh1023/Astroshala/internal/domain"
)

// Index implements domain.DocumentIndex on a MongoDB Atlas collection of
// document chunks with precomputed embeddings. Vector search relies on the
// externally configured Atlas search index; when it is absent or erroring
// the caller degrades to TextSearch.
type Index struct {
	coll      *mongo.Collection
	indexName string
}

func NewIndex(db *mongo.Database, collection, indexName string) *Index {
	if collection == "" {
		collection = "pdf_documents"
	}
	if indexName == "" {
		indexName = "vectorSearchIndex"
	}
	return &Index{
		coll:      db.Collection(collection),
		indexName: indexName,
	}
}

type chunkDoc struct {
	Text     string  `bson:"text"`
	Filename string  `bson:"filename,omitempty"`
	Score    float64 `bson:"score,omitempty"`
	Metadata struct {
		Index int `bson:"index"`
	} `bson:"metadata,omitempty"`
}

func (d chunkDoc) toPassage() domain.Passage {
	return domain.Passage{
		Text:       d.Text,
		Score:      d.Score,
		Filename:   d.Filename,
		ChunkIndex: d.Metadata.Index,
	}
}

// VectorSearch runs a knnBeta aggregation against the configured Atlas
// search index, ordered by similarity score.
func (i *Index) VectorSearch(ctx context.Context, vector []float32, k int) ([]domain.Passage, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$search", Value: bson.D{
			{Key: "index", Value: i.indexName},
			{Key: "knnBeta", Value: bson.D{
				{Key: "vector", Value: vector},
				{Key: "path", Value: "embedding"},
				{Key: "k", Value: k},
			}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "text", Value: 1},
			{Key: "filename", Value: 1},
			{Key: "metadata", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "searchScore"}}},
		}}},
		{{Key: "$limit", Value: k}},
	}

	cursor, err := i.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo vector search: %w", err)
	}
	defer cursor.Close(ctx)

	return decodePassages(ctx, cursor)
}

// TextSearch is the keyword fallback over the same corpus, ranked by the
// server-side text score. Requires the collection's text index.
func (i *Index) TextSearch(ctx context.Context, query string, k int) ([]domain.Passage, error) {
	filter := bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: query}}}}
	opts := options.Find().
		SetProjection(bson.D{
			{Key: "text", Value: 1},
			{Key: "filename", Value: 1},
			{Key: "metadata", Value: 1},
			{Key: "score", Value: bson.D{{Key: "$meta", Value: "textScore"}}},
		}).
		SetSort(bson.D{{Key: "score", Value: bson.D{{Key: "$meta", Value: "textScore"}}}}).
		SetLimit(int64(k))

	cursor, err := i.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo text search: %w", err)
	}
	defer cursor.Close(ctx)

	return decodePassages(ctx, cursor)
}

func (i *Index) Count(ctx context.Context) (int64, error) {
	count, err := i.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongo count documents: %w", err)
	}
	return count, nil
}

func decodePassages(ctx context.Context, cursor *mongo.Cursor) ([]domain.Passage, error) {
	var out []domain.Passage
	for cursor.Next(ctx) {
		var doc chunkDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode chunk: %w", err)
		}
		out = append(out, doc.toPassage())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return out, nil
}
