package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Client owns the connection to the MongoDB deployment. It is created once at startup
// and handed to the components that need database access.
type Client struct {
	client *mongo.Client
}

// NewDatabase connects to the MongoDB deployment addressed by uri and pings the primary.
// A non-zero timeout bounds the connect and ping step, zero waits as long as ctx allows.
func NewDatabase(ctx context.Context, uri string, timeout time.Duration) (*Client, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("unable to create connection to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Client{client: client}, nil
}

// Database returns a handle to the named database.
func (c *Client) Database(name string) *mongo.Database {
	return c.client.Database(name)
}

// Ping checks that the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return nil
}

// Disconnect closes every pooled connection of the client.
func (c *Client) Disconnect(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	return nil
}
