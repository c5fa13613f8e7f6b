package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func validInquiry() InquiryInput {
	return InquiryInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@x.com",
		Message:   "Hello",
	}
}

func TestInquiry_Valid(t *testing.T) {
	assert.True(t, Inquiry(validInquiry()).Valid())

	in := validInquiry()
	in.Phone = strPtr("+91 98765 43210")
	in.Company = strPtr("Harbour Foods")
	in.Topic = strPtr("export")
	assert.True(t, Inquiry(in).Valid())
}

func TestInquiry_RequiredFields(t *testing.T) {
	errs := Inquiry(InquiryInput{FirstName: "  ", Message: "\n"})

	assert.False(t, errs.Valid())
	assert.Equal(t, "is required", errs.Field("firstName"))
	assert.Equal(t, "is required", errs.Field("lastName"))
	assert.Equal(t, "is required", errs.Field("email"))
	assert.Equal(t, "is required", errs.Field("message"))
	assert.Empty(t, errs.Field("phone"))
}

func TestInquiry_Email(t *testing.T) {
	for _, email := range []string{"nope", "jane@", "Jane <jane@x.com>", "jane doe@x.com"} {
		in := validInquiry()
		in.Email = email
		assert.Equal(t, "must be a valid email address", Inquiry(in).Field("email"), email)
	}
}

func TestInquiry_LengthCaps(t *testing.T) {
	in := validInquiry()
	in.FirstName = strings.Repeat("a", MaxNameLength+1)
	in.Company = strPtr(strings.Repeat("c", MaxNameLength+1))
	in.Message = strings.Repeat("m", 20000)

	errs := Inquiry(in)
	assert.Contains(t, errs.Field("firstName"), "at most 255")
	assert.Contains(t, errs.Field("company"), "at most 255")
	assert.Empty(t, errs.Field("message"))
}

func TestInquiry_Topic(t *testing.T) {
	in := validInquiry()
	in.Topic = strPtr("pricing")
	assert.Contains(t, Inquiry(in).Field("topic"), "must be one of")

	in.Topic = strPtr("100%-off")
	assert.Equal(t, TopicProblem("100%-off"), Inquiry(in).Field("topic"))
	assert.NotContains(t, Inquiry(in).Field("topic"), "%!")

	in.Topic = strPtr("")
	assert.True(t, Inquiry(in).Valid())
}

func TestTestimonial(t *testing.T) {
	ok := TestimonialInput{Name: "Arjun", Content: "Consistently fresh catch.", Rating: 5}
	assert.True(t, Testimonial(ok).Valid())

	short := ok
	short.Content = "Too short"
	assert.Equal(t, "must be at least 10 characters", Testimonial(short).Field("content"))

	for _, rating := range []int{0, 6, -1} {
		bad := ok
		bad.Rating = rating
		assert.Equal(t, "must be between 1 and 5", Testimonial(bad).Field("rating"), rating)
	}

	name := ok
	name.Name = "A"
	assert.Equal(t, "must be at least 2 characters", Testimonial(name).Field("name"))
}

func TestStatusProblem(t *testing.T) {
	assert.Empty(t, StatusProblem("new"))
	assert.Empty(t, StatusProblem("replied"))
	assert.Empty(t, StatusProblem("resolved"))
	assert.Equal(t, "must be one of new, replied, resolved", StatusProblem("archived"))
	assert.Contains(t, StatusProblem(strings.Repeat("x", MaxStatusLength+1)), "at most 100")
}

func TestProductAndBlogPost(t *testing.T) {
	assert.True(t, Product(ProductInput{Name: "Vannamei Shrimp"}).Valid())
	assert.Equal(t, "is required", Product(ProductInput{}).Field("name"))

	assert.True(t, BlogPost(BlogPostInput{Title: "Cold chain 101", Content: "..."}).Valid())
	errs := BlogPost(BlogPostInput{})
	assert.Equal(t, "is required", errs.Field("title"))
	assert.Equal(t, "is required", errs.Field("content"))
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{{Field: "a", Message: "x"}, {Field: "b", Message: "y"}}
	assert.Equal(t, "a: x; b: y", errs.Error())
}
