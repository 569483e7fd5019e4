package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"roomrental/properties-api/domain"
	"roomrental/search-api/dto"
)

// IndexRepository is the search index contract. The index is a denormalized
// copy of the properties catalog kept in sync by the RabbitMQ consumer.
type IndexRepository interface {
	Search(ctx context.Context, request dto.SearchRequest) ([]domain.Property, int, error)
	Index(ctx context.Context, property domain.Property) error
	Delete(ctx context.Context, propertyID uint) error
}

// propertyDoc is the Mongo shape of an indexed property. The property id
// doubles as the document id so index operations are natural upserts.
type propertyDoc struct {
	ID            uint      `bson:"_id"`
	Title         string    `bson:"title"`
	Description   string    `bson:"description"`
	Address       string    `bson:"address"`
	City          string    `bson:"city"`
	State         string    `bson:"state"`
	ZipCode       string    `bson:"zip_code"`
	Country       string    `bson:"country"`
	PricePerMonth float64   `bson:"price_per_month"`
	Bedrooms      int       `bson:"bedrooms"`
	Bathrooms     int       `bson:"bathrooms"`
	AreaSqft      int       `bson:"area_sqft"`
	PropertyType  string    `bson:"property_type"`
	LandlordID    uint      `bson:"landlord_id"`
	Available     bool      `bson:"available"`
	Latitude      float64   `bson:"latitude"`
	Longitude     float64   `bson:"longitude"`
	Amenities     []string  `bson:"amenities"`
	ImageURLs     []string  `bson:"image_urls"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func toDoc(p domain.Property) propertyDoc {
	return propertyDoc{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Address:       p.Address,
		City:          p.City,
		State:         p.State,
		ZipCode:       p.ZipCode,
		Country:       p.Country,
		PricePerMonth: p.PricePerMonth,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		AreaSqft:      p.AreaSqft,
		PropertyType:  string(p.PropertyType),
		LandlordID:    p.LandlordID,
		Available:     p.Available,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		Amenities:     p.Amenities,
		ImageURLs:     p.ImageURLs,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (d propertyDoc) toProperty() domain.Property {
	return domain.Property{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Address:       d.Address,
		City:          d.City,
		State:         d.State,
		ZipCode:       d.ZipCode,
		Country:       d.Country,
		PricePerMonth: d.PricePerMonth,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		AreaSqft:      d.AreaSqft,
		PropertyType:  domain.PropertyType(d.PropertyType),
		LandlordID:    d.LandlordID,
		Available:     d.Available,
		Latitude:      d.Latitude,
		Longitude:     d.Longitude,
		Amenities:     d.Amenities,
		ImageURLs:     d.ImageURLs,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// sortFields maps the public sort names to document fields.
var sortFields = map[string]string{
	"price_per_month": "price_per_month",
	"bedrooms":        "bedrooms",
	"area_sqft":       "area_sqft",
	"created_at":      "created_at",
}

type mongoIndexRepository struct {
	collection *mongo.Collection
}

// NewMongoIndexRepository wires the index over the given Mongo database.
func NewMongoIndexRepository(db *mongo.Database) IndexRepository {
	return &mongoIndexRepository{collection: db.Collection("properties")}
}

func (r *mongoIndexRepository) Search(ctx context.Context, request dto.SearchRequest) ([]domain.Property, int, error) {
	filter := bson.M{"available": true}

	if request.Query != "" {
		pattern := primitive.Regex{Pattern: request.Query, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	if request.City != "" {
		filter["city"] = primitive.Regex{Pattern: request.City, Options: "i"}
	}
	if request.Country != "" {
		filter["country"] = primitive.Regex{Pattern: request.Country, Options: "i"}
	}
	if request.MinPrice > 0 || request.MaxPrice > 0 {
		price := bson.M{}
		if request.MinPrice > 0 {
			price["$gte"] = request.MinPrice
		}
		if request.MaxPrice > 0 {
			price["$lte"] = request.MaxPrice
		}
		filter["price_per_month"] = price
	}
	if request.Bedrooms > 0 {
		filter["bedrooms"] = bson.M{"$gte": request.Bedrooms}
	}
	if request.Bathrooms > 0 {
		filter["bathrooms"] = bson.M{"$gte": request.Bathrooms}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	sortField, ok := sortFields[request.SortBy]
	if !ok {
		sortField = "price_per_month"
	}
	order := 1
	if request.SortOrder == "desc" {
		order = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip(int64((request.Page - 1) * request.PageSize)).
		SetLimit(int64(request.PageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query search index: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []propertyDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode search results: %w", err)
	}

	properties := make([]domain.Property, 0, len(docs))
	for _, doc := range docs {
		properties = append(properties, doc.toProperty())
	}
	return properties, int(total), nil
}

func (r *mongoIndexRepository) Index(ctx context.Context, property domain.Property) error {
	doc := toDoc(property)
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to index property %d: %w", property.ID, err)
	}
	return nil
}

func (r *mongoIndexRepository) Delete(ctx context.Context, propertyID uint) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": propertyID})
	if err != nil {
		return fmt.Errorf("failed to delete property %d from index: %w", propertyID, err)
	}
	return nil
}
