package schema

import "breeder-site-backend/internal/models"

// NullableString carries a nullable field in a partial update. Set reports
// whether the field was present at all; Value nil with Set true clears it.
type NullableString struct {
	Set   bool
	Value *string
}

// PuppyInput is the insertable subset of a puppy
type PuppyInput struct {
	Name             string  `json:"name" validate:"required"`
	Breed            string  `json:"breed" validate:"required"`
	Sex              string  `json:"sex" validate:"required"`
	Age              string  `json:"age" validate:"required"`
	Temperament      string  `json:"temperament" validate:"required"`
	Price            int     `json:"price" validate:"min=0"`
	DepositAmount    int     `json:"depositAmount" validate:"min=0"`
	ImageURL         *string `json:"imageUrl"`
	ShortDescription string  `json:"shortDescription" validate:"required"`
	Description      string  `json:"description" validate:"required"`
	IsAvailable      bool    `json:"isAvailable"`
}

// PuppyPatch is a partial puppy update. Nil fields are left untouched.
type PuppyPatch struct {
	Name             *string        `json:"name" validate:"omitnil,min=1"`
	Breed            *string        `json:"breed" validate:"omitnil,min=1"`
	Sex              *string        `json:"sex" validate:"omitnil,min=1"`
	Age              *string        `json:"age" validate:"omitnil,min=1"`
	Temperament      *string        `json:"temperament" validate:"omitnil,min=1"`
	Price            *int           `json:"price" validate:"omitnil,min=0"`
	DepositAmount    *int           `json:"depositAmount" validate:"omitnil,min=0"`
	ImageURL         NullableString `json:"imageUrl"`
	ShortDescription *string        `json:"shortDescription" validate:"omitnil,min=1"`
	Description      *string        `json:"description" validate:"omitnil,min=1"`
	IsAvailable      *bool          `json:"isAvailable"`
}

// Empty reports whether the patch changes nothing
func (p PuppyPatch) Empty() bool {
	return p.Name == nil && p.Breed == nil && p.Sex == nil && p.Age == nil &&
		p.Temperament == nil && p.Price == nil && p.DepositAmount == nil &&
		!p.ImageURL.Set && p.ShortDescription == nil && p.Description == nil &&
		p.IsAvailable == nil
}

var puppyRules = []FieldRule{
	{Name: "name", Kind: KindString, Required: true},
	{Name: "breed", Kind: KindString, Required: true},
	{Name: "sex", Kind: KindString, Required: true},
	{Name: "age", Kind: KindString, Required: true},
	{Name: "temperament", Kind: KindString, Required: true},
	{Name: "price", Kind: KindInt, Required: true},
	{Name: "depositAmount", Kind: KindInt, Default: 0},
	{Name: "imageUrl", Kind: KindNullableString},
	{Name: "shortDescription", Kind: KindString, Required: true},
	{Name: "description", Kind: KindString, Required: true},
	{Name: "isAvailable", Kind: KindBool, Default: true},
}

// PuppyInputFromRaw coerces and validates a puppy creation payload
func PuppyInputFromRaw(raw Raw) (PuppyInput, error) {
	v, err := Coerce(raw, puppyRules, ModeCreate)
	if err != nil {
		return PuppyInput{}, err
	}
	in := PuppyInput{
		Name:             v.str("name"),
		Breed:            v.str("breed"),
		Sex:              v.str("sex"),
		Age:              v.str("age"),
		Temperament:      v.str("temperament"),
		Price:            v.integer("price"),
		DepositAmount:    v.integer("depositAmount"),
		ImageURL:         v.nullable("imageUrl"),
		ShortDescription: v.str("shortDescription"),
		Description:      v.str("description"),
		IsAvailable:      v.boolean("isAvailable"),
	}
	if err := Validate(in); err != nil {
		return PuppyInput{}, err
	}
	return in, nil
}

// PuppyPatchFromRaw coerces and validates a partial puppy update
func PuppyPatchFromRaw(raw Raw) (PuppyPatch, error) {
	v, err := Coerce(raw, puppyRules, ModePatch)
	if err != nil {
		return PuppyPatch{}, err
	}
	p := PuppyPatch{
		Name:             v.strPtr("name"),
		Breed:            v.strPtr("breed"),
		Sex:              v.strPtr("sex"),
		Age:              v.strPtr("age"),
		Temperament:      v.strPtr("temperament"),
		Price:            v.intPtr("price"),
		DepositAmount:    v.intPtr("depositAmount"),
		ImageURL:         v.nullablePatch("imageUrl"),
		ShortDescription: v.strPtr("shortDescription"),
		Description:      v.strPtr("description"),
		IsAvailable:      v.boolPtr("isAvailable"),
	}
	if err := Validate(p); err != nil {
		return PuppyPatch{}, err
	}
	return p, nil
}

// ReviewInput is the insertable subset of a review
type ReviewInput struct {
	ReviewerName    string `json:"reviewerName" validate:"required"`
	Rating          int    `json:"rating" validate:"min=1,max=5"`
	TestimonialText string `json:"testimonialText" validate:"required"`
	IsFeatured      bool   `json:"isFeatured"`
}

// ReviewPatch is a partial review update
type ReviewPatch struct {
	ReviewerName    *string `json:"reviewerName" validate:"omitnil,min=1"`
	Rating          *int    `json:"rating" validate:"omitnil,min=1,max=5"`
	TestimonialText *string `json:"testimonialText" validate:"omitnil,min=1"`
	IsFeatured      *bool   `json:"isFeatured"`
}

// Empty reports whether the patch changes nothing
func (p ReviewPatch) Empty() bool {
	return p.ReviewerName == nil && p.Rating == nil && p.TestimonialText == nil && p.IsFeatured == nil
}

var reviewRules = []FieldRule{
	{Name: "reviewerName", Kind: KindString, Required: true},
	{Name: "rating", Kind: KindInt, Required: true},
	{Name: "testimonialText", Kind: KindString, Required: true},
	{Name: "isFeatured", Kind: KindBool, Default: false},
}

// ReviewInputFromRaw coerces and validates a review creation payload
func ReviewInputFromRaw(raw Raw) (ReviewInput, error) {
	v, err := Coerce(raw, reviewRules, ModeCreate)
	if err != nil {
		return ReviewInput{}, err
	}
	in := ReviewInput{
		ReviewerName:    v.str("reviewerName"),
		Rating:          v.integer("rating"),
		TestimonialText: v.str("testimonialText"),
		IsFeatured:      v.boolean("isFeatured"),
	}
	if err := Validate(in); err != nil {
		return ReviewInput{}, err
	}
	return in, nil
}

// ReviewPatchFromRaw coerces and validates a partial review update
func ReviewPatchFromRaw(raw Raw) (ReviewPatch, error) {
	v, err := Coerce(raw, reviewRules, ModePatch)
	if err != nil {
		return ReviewPatch{}, err
	}
	p := ReviewPatch{
		ReviewerName:    v.strPtr("reviewerName"),
		Rating:          v.intPtr("rating"),
		TestimonialText: v.strPtr("testimonialText"),
		IsFeatured:      v.boolPtr("isFeatured"),
	}
	if err := Validate(p); err != nil {
		return ReviewPatch{}, err
	}
	return p, nil
}

// InquiryInput is the insertable subset of an inquiry
type InquiryInput struct {
	FullName        string  `json:"fullName" validate:"required"`
	Address         string  `json:"address" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           string  `json:"phone" validate:"required"`
	Message         string  `json:"message" validate:"required"`
	SelectedPuppyID *string `json:"selectedPuppyId"`
}

var inquiryRules = []FieldRule{
	{Name: "fullName", Kind: KindString, Required: true},
	{Name: "address", Kind: KindString, Required: true},
	{Name: "email", Kind: KindString, Required: true},
	{Name: "phone", Kind: KindString, Required: true},
	{Name: "message", Kind: KindString, Required: true},
	{Name: "selectedPuppyId", Kind: KindNullableString},
}

// InquiryInputFromRaw coerces and validates an inquiry submission
func InquiryInputFromRaw(raw Raw) (InquiryInput, error) {
	v, err := Coerce(raw, inquiryRules, ModeCreate)
	if err != nil {
		return InquiryInput{}, err
	}
	in := InquiryInput{
		FullName:        v.str("fullName"),
		Address:         v.str("address"),
		Email:           v.str("email"),
		Phone:           v.str("phone"),
		Message:         v.str("message"),
		SelectedPuppyID: v.nullable("selectedPuppyId"),
	}
	if err := Validate(in); err != nil {
		return InquiryInput{}, err
	}
	return in, nil
}

// SettingInput upserts one site setting
type SettingInput struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

var settingRules = []FieldRule{
	{Name: "key", Kind: KindString, Required: true},
	{Name: "value", Kind: KindString, Required: true},
}

// SettingInputFromRaw coerces and validates a setting upsert
func SettingInputFromRaw(raw Raw) (SettingInput, error) {
	v, err := Coerce(raw, settingRules, ModeCreate)
	if err != nil {
		return SettingInput{}, err
	}
	in := SettingInput{Key: v.str("key"), Value: v.str("value")}
	if err := Validate(in); err != nil {
		return SettingInput{}, err
	}
	return in, nil
}

// RegisterInput creates an account with the user role
type RegisterInput struct {
	Name     string `json:"name" validate:"min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

var registerRules = []FieldRule{
	{Name: "name", Kind: KindString, Required: true},
	{Name: "email", Kind: KindString, Required: true},
	{Name: "password", Kind: KindString, Required: true},
}

// RegisterInputFromRaw coerces and validates a registration payload
func RegisterInputFromRaw(raw Raw) (RegisterInput, error) {
	v, err := Coerce(raw, registerRules, ModeCreate)
	if err != nil {
		return RegisterInput{}, err
	}
	in := RegisterInput{Name: v.str("name"), Email: v.str("email"), Password: v.str("password")}
	if err := Validate(in); err != nil {
		return RegisterInput{}, err
	}
	return in, nil
}

// LoginInput authenticates an existing account
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var loginRules = []FieldRule{
	{Name: "email", Kind: KindString, Required: true},
	{Name: "password", Kind: KindString, Required: true},
}

// LoginInputFromRaw coerces and validates a login payload
func LoginInputFromRaw(raw Raw) (LoginInput, error) {
	v, err := Coerce(raw, loginRules, ModeCreate)
	if err != nil {
		return LoginInput{}, err
	}
	in := LoginInput{Email: v.str("email"), Password: v.str("password")}
	if err := Validate(in); err != nil {
		return LoginInput{}, err
	}
	return in, nil
}

// Apply copies the present fields of the patch onto dst
func (p PuppyPatch) Apply(dst *models.Puppy) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Breed != nil {
		dst.Breed = *p.Breed
	}
	if p.Sex != nil {
		dst.Sex = *p.Sex
	}
	if p.Age != nil {
		dst.Age = *p.Age
	}
	if p.Temperament != nil {
		dst.Temperament = *p.Temperament
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.DepositAmount != nil {
		dst.DepositAmount = *p.DepositAmount
	}
	if p.ImageURL.Set {
		dst.ImageURL = p.ImageURL.Value
	}
	if p.ShortDescription != nil {
		dst.ShortDescription = *p.ShortDescription
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.IsAvailable != nil {
		dst.IsAvailable = *p.IsAvailable
	}
}

// Apply copies the present fields of the patch onto dst
func (p ReviewPatch) Apply(dst *models.Review) {
	if p.ReviewerName != nil {
		dst.ReviewerName = *p.ReviewerName
	}
	if p.Rating != nil {
		dst.Rating = *p.Rating
	}
	if p.TestimonialText != nil {
		dst.TestimonialText = *p.TestimonialText
	}
	if p.IsFeatured != nil {
		dst.IsFeatured = *p.IsFeatured
	}
}
