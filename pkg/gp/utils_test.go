package gp_test

import (
	"github.com/mandelsoft/goutils/sliceutils"
	. "github.com/mandelsoft/goutils/testutils"

	"github.com/mandelsoft/chaincomposer/pkg/chain"
	"github.com/mandelsoft/chaincomposer/pkg/gp"
	"github.com/mandelsoft/chaincomposer/pkg/models"
)

const (
	XG  = models.TYPE_XGBOOST
	KNN = models.TYPE_KNN
	LDA = models.TYPE_LDA
	LR  = models.TYPE_LOGREG
	MLP = models.TYPE_MLP
)

func Leaf(typ string) *gp.TreeNode {
	return Must(gp.NewSource(models.MustCreate(typ), chain.DefaultInput))
}

func Inner(typ string, children ...*gp.TreeNode) *gp.TreeNode {
	return Must(gp.NewComposite(models.MustCreate(typ), children...))
}

//	     XG
//	  |      \
//	 XG      MLP
//	|  \    |   \
//	KNN LDA KNN  LDA
func TreeFirst() *gp.TreeNode {
	return Inner(XG,
		Inner(XG, Leaf(KNN), Leaf(LDA)),
		Inner(MLP, Leaf(KNN), Leaf(LDA)),
	)
}

//	     XG
//	  |      \
//	 XG       XG
//	|  \     |  \
//	LR  XG   LR  LDA
//	   |  \
//	  KNN LDA
func TreeSecond() *gp.TreeNode {
	return Inner(XG,
		Inner(XG, Leaf(LR), Inner(XG, Leaf(KNN), Leaf(LDA))),
		Inner(XG, Leaf(LR), Leaf(LDA)),
	)
}

func TreeTypes(nodes []*gp.TreeNode) []string {
	return sliceutils.Transform(nodes, (*gp.TreeNode).Type)
}

func ChainTypes(nodes []*chain.Node) []string {
	return sliceutils.Transform(nodes, (*chain.Node).Type)
}
