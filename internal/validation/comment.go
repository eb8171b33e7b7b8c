package validation

// CreateComment is the rule set for POST /comments
var CreateComment = Pipeline{
	NotEmpty("content", "Content is required"),
	NotEmpty("post", "Post is required"),
}
