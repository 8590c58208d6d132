package tree

/*
Prediction represents the outcome of classifying a feature vector with a
Tree. When Matched is false the tree had no branch for one of the vector's
values on the path from the root and no class could be predicted.
*/
type Prediction struct {
	Class   string
	Matched bool
}

// Unmatched is the prediction made for vectors the tree cannot classify.
var Unmatched = Prediction{}

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrFeatureCount is the error returned by the Predict method of a tree when
the feature vector does not have the number of features the tree was
grown with.
*/
const ErrFeatureCount = PredictionError("feature vector length does not match the tree")

/*
ErrInvalidTree is the error wrapped by Validate when the tree breaks the
structure of a decision tree.
*/
const ErrInvalidTree = PredictionError("invalid tree")

func (pe PredictionError) Error() string {
	return string(pe)
}

func (p Prediction) String() string {
	if !p.Matched {
		return "unmatched"
	}
	return p.Class
}
