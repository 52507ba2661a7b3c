package scanner_test

import (
	"errors"
	"unicode"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/chaincomposer/pkg/scanner"
)

var _ = Describe("scanner", func() {
	It("scans segments", func() {
		s := me.NewScanner("KNN ( LDA)")
		Expect(s.Scan(unicode.IsLetter)).To(Equal("KNN"))
		Expect(s.Position()).To(Equal(4))
		Expect(s.ConsumeRune('(')).To(Succeed())
		Expect(s.SkipBlanks()).To(Equal('L'))
		Expect(s.Scan(unicode.IsLetter)).To(Equal("LDA"))
		Expect(s.ConsumeRune(')')).To(Succeed())
		Expect(s.Current()).To(Equal(me.EOF))
	})

	It("reports unexpected runes", func() {
		s := me.NewScanner("KNN,")
		s.Scan(unicode.IsLetter)
		err := s.ConsumeRune('(')
		Expect(err).To(MatchError(`"KNN," 4: "(" expected, but found ","`))

		var serr *me.Error
		Expect(errors.As(err, &serr)).To(BeTrue())
		Expect(serr.Position()).To(Equal(4))
		Expect(serr.Message()).To(Equal(`"(" expected, but found ","`))
	})

	It("reports end of input", func() {
		s := me.NewScanner("KNN")
		s.Scan(unicode.IsLetter)
		Expect(s.ConsumeRune(')')).To(MatchError(`"KNN" 3: ")" expected, but end of input found`))
	})

	It("steps over invalid encodings", func() {
		s := me.NewScanner("KNN\xffX")
		Expect(s.Scan(unicode.IsLetter)).To(Equal("KNN"))
		Expect(s.Current()).To(Equal(utf8.RuneError))
		Expect(s.Scan(func(rune) bool { return true })).To(Equal(""))
		Expect(s.Next()).To(Equal('X'))
		Expect(s.Position()).To(Equal(5))
		Expect(s.Next()).To(Equal(me.EOF))
	})

	It("treats NUL as ordinary rune", func() {
		s := me.NewScanner("KNN\x00")
		Expect(s.Scan(unicode.IsLetter)).To(Equal("KNN"))
		Expect(s.Current()).To(Equal(rune(0)))
		Expect(s.Current()).NotTo(Equal(me.EOF))
		Expect(s.ConsumeRune(')')).To(MatchError(`"KNN\x00" 4: ")" expected, but found "\x00"`))
	})
})
