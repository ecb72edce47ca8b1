package bolt

// Bucket names.
var (
	bucketCharacters = []byte("characters")
	bucketRules      = []byte("rules")
)
