package models

const (
	TYPE_LOGREG  = "LogisticRegression"
	TYPE_KNN     = "KNN"
	TYPE_LDA     = "LDA"
	TYPE_XGBOOST = "XGBoost"
	TYPE_MLP     = "MLP"
)

func init() {
	MustRegister(DefaultScheme, TYPE_LOGREG, &LogisticRegression{})
	MustRegister(DefaultScheme, TYPE_KNN, &KNN{})
	MustRegister(DefaultScheme, TYPE_LDA, &LDA{})
	MustRegister(DefaultScheme, TYPE_XGBOOST, &XGBoost{})
	MustRegister(DefaultScheme, TYPE_MLP, &MLP{})
}

type LogisticRegression struct {
	ModelMeta
	C       float64 `json:"c,omitempty"`
	MaxIter int     `json:"maxIter,omitempty"`
	Penalty string  `json:"penalty,omitempty"`
}

type KNN struct {
	ModelMeta
	Neighbors int    `json:"neighbors,omitempty"`
	Weights   string `json:"weights,omitempty"`
}

type LDA struct {
	ModelMeta
	Solver    string  `json:"solver,omitempty"`
	Shrinkage float64 `json:"shrinkage,omitempty"`
}

type XGBoost struct {
	ModelMeta
	Estimators   int     `json:"estimators,omitempty"`
	MaxDepth     int     `json:"maxDepth,omitempty"`
	LearningRate float64 `json:"learningRate,omitempty"`
}

type MLP struct {
	ModelMeta
	HiddenLayers []int  `json:"hiddenLayers,omitempty"`
	Activation   string `json:"activation,omitempty"`
}

// CopyModel avoids aliasing the layer slice.
func (m *MLP) CopyModel() Model {
	c := *m
	if m.HiddenLayers != nil {
		c.HiddenLayers = append([]int(nil), m.HiddenLayers...)
	}
	return &c
}
