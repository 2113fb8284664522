package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/planmytrip/backend/internal/core/domain"
	"github.com/planmytrip/backend/internal/core/usecases"
)

const gqlUserKey ctxKey = "gql_user_id"

// buildSchema creates the GraphQL read schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	coordinateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Coordinate",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lng": &graphql.Field{Type: graphql.Float},
		},
	})

	placeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Place",
		Fields: graphql.Fields{
			"name":        &graphql.Field{Type: graphql.String},
			"coordinate":  &graphql.Field{Type: coordinateType},
			"category":    &graphql.Field{Type: graphql.String},
			"distance_km": &graphql.Field{Type: graphql.Float},
		},
	})

	// RouteStop embeds Place, so promoted fields need explicit resolvers.
	routeStopType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RouteStop",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.RouteStop).Name, nil
				},
			},
			"coordinate": &graphql.Field{
				Type: coordinateType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.RouteStop).Coordinate, nil
				},
			},
			"category": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(p.Source.(domain.RouteStop).Category), nil
				},
			},
			"order":                   &graphql.Field{Type: graphql.Int},
			"distance_from_origin_km": &graphql.Field{Type: graphql.Float},
		},
	})

	memberType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Member",
		Fields: graphql.Fields{
			"name":  &graphql.Field{Type: graphql.String},
			"email": &graphql.Field{Type: graphql.String},
		},
	})

	tripType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Trip",
		Fields: graphql.Fields{
			"id":                &graphql.Field{Type: graphql.String},
			"trip_name":         &graphql.Field{Type: graphql.String},
			"trip_type":         &graphql.Field{Type: graphql.String},
			"start_date":        &graphql.Field{Type: graphql.DateTime},
			"end_date":          &graphql.Field{Type: graphql.DateTime},
			"total_days":        &graphql.Field{Type: graphql.Int},
			"start_place":       &graphql.Field{Type: placeType},
			"main_destination":  &graphql.Field{Type: placeType},
			"route_places":      &graphql.Field{Type: graphql.NewList(routeStopType)},
			"members":           &graphql.Field{Type: graphql.NewList(memberType)},
			"total_distance_km": &graphql.Field{Type: graphql.Float},
			"created_at":        &graphql.Field{Type: graphql.DateTime},
		},
	})

	pathPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PathPoint",
		Fields: graphql.Fields{
			"name":       &graphql.Field{Type: graphql.String},
			"coordinate": &graphql.Field{Type: coordinateType},
			"role":       &graphql.Field{Type: graphql.String},
			"order":      &graphql.Field{Type: graphql.Int},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"myTrips": &graphql.Field{
				Type:        graphql.NewList(tripType),
				Description: "The caller's trips, newest first",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ownerID, _ := p.Context.Value(gqlUserKey).(string)
					return deps.Trips.ListByOwner(p.Context, ownerID)
				},
			},
			"trip": &graphql.Field{
				Type:        tripType,
				Description: "A trip by id; \"latest\" means the most recent trip",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					if id == "latest" {
						id = ""
					}
					return deps.Trips.FetchFull(p.Context, id)
				},
			},
			"tripPath": &graphql.Field{
				Type:        graphql.NewList(pathPointType),
				Description: "Ordered path of coordinates for a trip",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					if id == "latest" {
						id = ""
					}
					trip, err := deps.Trips.FetchFull(p.Context, id)
					if err != nil {
						return nil, err
					}
					return usecases.BuildPath(trip)
				},
			},
			"nearbyPlaces": &graphql.Field{
				Type:        graphql.NewList(placeType),
				Description: "Points of interest around a named place, nearest first",
				Args: graphql.FieldConfigArgument{
					"name":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"radius_km": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: usecases.DefaultRadiusKm},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					name := p.Args["name"].(string)
					radius := p.Args["radius_km"].(float64)
					result, err := deps.Nearby.FindNearby(p.Context, name, radius)
					if err != nil {
						return nil, err
					}
					return result.Places, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		ctx := context.WithValue(c.Context(), gqlUserKey, currentUserID(c))
		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        ctx,
		})

		return c.JSON(result)
	}
}
