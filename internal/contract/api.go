package contract

import (
	"net/http"
	"net/url"

	"breeder-site-backend/internal/models"
	"breeder-site-backend/internal/schema"
)

// PuppyRoutes groups the puppy operations
type PuppyRoutes struct {
	List   Route[models.PuppyFilter]
	Get    Route[NoInput]
	Create Route[schema.PuppyInput]
	Update Route[schema.PuppyPatch]
	Delete Route[NoInput]
}

// ReviewRoutes groups the review operations
type ReviewRoutes struct {
	List   Route[models.ReviewFilter]
	Create Route[schema.ReviewInput]
	Update Route[schema.ReviewPatch]
	Delete Route[NoInput]
}

// InquiryRoutes groups the inquiry operations
type InquiryRoutes struct {
	List   Route[NoInput]
	Create Route[schema.InquiryInput]
}

// SettingRoutes groups the site setting operations
type SettingRoutes struct {
	List   Route[NoInput]
	Get    Route[NoInput]
	Update Route[schema.SettingInput]
}

// AuthRoutes groups the session operations
type AuthRoutes struct {
	Me       Route[NoInput]
	Login    Route[schema.LoginInput]
	Register Route[schema.RegisterInput]
	Logout   Route[NoInput]
}

// UploadRoutes groups the image upload operation. Its multipart body is read
// by the handler directly, so the route declares no input parser.
type UploadRoutes struct {
	Create Route[NoInput]
}

// Registry is the complete HTTP contract
type Registry struct {
	Puppies   PuppyRoutes
	Reviews   ReviewRoutes
	Inquiries InquiryRoutes
	Settings  SettingRoutes
	Auth      AuthRoutes
	Uploads   UploadRoutes
}

// body adapts a schema parser over Raw into an InputFunc
func body[In any](parse func(schema.Raw) (In, error)) InputFunc[In] {
	return func(b []byte, _ url.Values) (In, error) {
		raw, err := schema.DecodeRaw(b)
		if err != nil {
			var zero In
			return zero, err
		}
		return parse(raw)
	}
}

// query adapts a query parser into an InputFunc
func query[In any](parse func(url.Values) (In, error)) InputFunc[In] {
	return func(_ []byte, q url.Values) (In, error) {
		return parse(q)
	}
}

// API is the contract shared by the server and the client
var API = Registry{
	Puppies: PuppyRoutes{
		List: Route[models.PuppyFilter]{
			Name:   "puppies.list",
			Method: http.MethodGet,
			Path:   "/api/puppies",
			Input:  query(schema.PuppyFilterFromQuery),
			Responses: map[int]Validator{
				http.StatusOK:         List[models.Puppy](),
				http.StatusBadRequest: validationError,
			},
		},
		Get: Route[NoInput]{
			Name:   "puppies.get",
			Method: http.MethodGet,
			Path:   "/api/puppies/:id",
			Responses: map[int]Validator{
				http.StatusOK:       Body[models.Puppy](),
				http.StatusNotFound: messageError,
			},
		},
		Create: Route[schema.PuppyInput]{
			Name:   "puppies.create",
			Method: http.MethodPost,
			Path:   "/api/puppies",
			Input:  body(schema.PuppyInputFromRaw),
			Responses: map[int]Validator{
				http.StatusCreated:      Body[models.Puppy](),
				http.StatusBadRequest:   validationError,
				http.StatusUnauthorized: messageError,
			},
		},
		Update: Route[schema.PuppyPatch]{
			Name:   "puppies.update",
			Method: http.MethodPut,
			Path:   "/api/puppies/:id",
			Input:  body(schema.PuppyPatchFromRaw),
			Responses: map[int]Validator{
				http.StatusOK:           Body[models.Puppy](),
				http.StatusBadRequest:   validationError,
				http.StatusUnauthorized: messageError,
				http.StatusNotFound:     messageError,
			},
		},
		Delete: Route[NoInput]{
			Name:   "puppies.delete",
			Method: http.MethodDelete,
			Path:   "/api/puppies/:id",
			Responses: map[int]Validator{
				http.StatusNoContent:    Empty(),
				http.StatusUnauthorized: messageError,
				http.StatusNotFound:     messageError,
			},
		},
	},
	Reviews: ReviewRoutes{
		List: Route[models.ReviewFilter]{
			Name:   "reviews.list",
			Method: http.MethodGet,
			Path:   "/api/reviews",
			Input:  query(schema.ReviewFilterFromQuery),
			Responses: map[int]Validator{
				http.StatusOK:         List[models.Review](),
				http.StatusBadRequest: validationError,
			},
		},
		Create: Route[schema.ReviewInput]{
			Name:   "reviews.create",
			Method: http.MethodPost,
			Path:   "/api/reviews",
			Input:  body(schema.ReviewInputFromRaw),
			Responses: map[int]Validator{
				http.StatusCreated:      Body[models.Review](),
				http.StatusBadRequest:   validationError,
				http.StatusUnauthorized: messageError,
			},
		},
		Update: Route[schema.ReviewPatch]{
			Name:   "reviews.update",
			Method: http.MethodPut,
			Path:   "/api/reviews/:id",
			Input:  body(schema.ReviewPatchFromRaw),
			Responses: map[int]Validator{
				http.StatusOK:           Body[models.Review](),
				http.StatusBadRequest:   validationError,
				http.StatusUnauthorized: messageError,
				http.StatusNotFound:     messageError,
			},
		},
		Delete: Route[NoInput]{
			Name:   "reviews.delete",
			Method: http.MethodDelete,
			Path:   "/api/reviews/:id",
			Responses: map[int]Validator{
				http.StatusNoContent:    Empty(),
				http.StatusUnauthorized: messageError,
				http.StatusNotFound:     messageError,
			},
		},
	},
	Inquiries: InquiryRoutes{
		List: Route[NoInput]{
			Name:   "inquiries.list",
			Method: http.MethodGet,
			Path:   "/api/inquiries",
			Responses: map[int]Validator{
				http.StatusOK:           List[models.Inquiry](),
				http.StatusUnauthorized: messageError,
			},
		},
		Create: Route[schema.InquiryInput]{
			Name:   "inquiries.create",
			Method: http.MethodPost,
			Path:   "/api/inquiries",
			Input:  body(schema.InquiryInputFromRaw),
			Responses: map[int]Validator{
				http.StatusCreated:    Body[models.Inquiry](),
				http.StatusBadRequest: validationError,
			},
		},
	},
	Settings: SettingRoutes{
		List: Route[NoInput]{
			Name:   "settings.list",
			Method: http.MethodGet,
			Path:   "/api/settings",
			Responses: map[int]Validator{
				http.StatusOK: List[models.SiteSetting](),
			},
		},
		Get: Route[NoInput]{
			Name:   "settings.get",
			Method: http.MethodGet,
			Path:   "/api/settings/:key",
			Responses: map[int]Validator{
				http.StatusOK:       Body[models.SiteSetting](),
				http.StatusNotFound: messageError,
			},
		},
		Update: Route[schema.SettingInput]{
			Name:   "settings.update",
			Method: http.MethodPost,
			Path:   "/api/settings",
			Input:  body(schema.SettingInputFromRaw),
			Responses: map[int]Validator{
				http.StatusOK:           Body[models.SiteSetting](),
				http.StatusBadRequest:   validationError,
				http.StatusUnauthorized: messageError,
			},
		},
	},
	Auth: AuthRoutes{
		Me: Route[NoInput]{
			Name:   "auth.me",
			Method: http.MethodGet,
			Path:   "/api/me",
			Responses: map[int]Validator{
				http.StatusOK: NullOr[models.UserSummary](),
			},
		},
		Login: Route[schema.LoginInput]{
			Name:   "auth.login",
			Method: http.MethodPost,
			Path:   "/api/login",
			Input:  body(schema.LoginInputFromRaw),
			Responses: map[int]Validator{
				http.StatusOK:           Body[models.UserSummary](),
				http.StatusBadRequest:   validationError,
				http.StatusUnauthorized: messageError,
			},
		},
		Register: Route[schema.RegisterInput]{
			Name:   "auth.register",
			Method: http.MethodPost,
			Path:   "/api/register",
			Input:  body(schema.RegisterInputFromRaw),
			Responses: map[int]Validator{
				http.StatusCreated:    Body[models.UserSummary](),
				http.StatusBadRequest: validationError,
				http.StatusConflict:   messageError,
			},
		},
		Logout: Route[NoInput]{
			Name:   "auth.logout",
			Method: http.MethodPost,
			Path:   "/api/logout",
			Responses: map[int]Validator{
				http.StatusNoContent: Empty(),
			},
		},
	},
	Uploads: UploadRoutes{
		Create: Route[NoInput]{
			Name:   "uploads.create",
			Method: http.MethodPost,
			Path:   "/api/upload",
			Responses: map[int]Validator{
				http.StatusOK:           Body[models.UploadResult](),
				http.StatusBadRequest:   validationError,
				http.StatusUnauthorized: messageError,
			},
		},
	},
}
