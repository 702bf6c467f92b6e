package dice_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
)

// fixedSource replays values in order and then repeats the last one.
type fixedSource struct {
	values []float64
	i      int
}

func (f *fixedSource) Float64() float64 {
	v := f.values[min(f.i, len(f.values)-1)]
	f.i++
	return v
}

func fixed(values ...float64) *dice.Roller {
	return dice.New(&fixedSource{values: values})
}

type DiceTestSuite struct {
	suite.Suite
}

func TestDiceSuite(t *testing.T) {
	suite.Run(t, new(DiceTestSuite))
}

func (s *DiceTestSuite) TestRollDieBounds() {
	for _, sides := range dice.Options {
		s.Assert().Equal(1, fixed(0).RollDie(sides), "d%d low", sides)
		s.Assert().Equal(sides, fixed(0.9999999).RollDie(sides), "d%d high", sides)
	}

	s.Assert().Equal(11, fixed(0.5).RollD20())
	s.Assert().Equal(1, fixed(0.7).RollDie(0))
}

func (s *DiceTestSuite) TestRollDieStaysInRange() {
	r := dice.NewSeeded(42)
	for i := 0; i < 2000; i++ {
		face := r.RollDie(6)
		s.Require().GreaterOrEqual(face, 1)
		s.Require().LessOrEqual(face, 6)
	}
}

func (s *DiceTestSuite) TestSeededRollerIsDeterministic() {
	a := dice.NewSeeded(7).RollMultiple(10, 20)
	b := dice.NewSeeded(7).RollMultiple(10, 20)
	s.Assert().Equal(a, b)
}

func (s *DiceTestSuite) TestRollMultiple() {
	res := fixed(0, 0.5, 0.99).RollMultiple(3, 6)
	s.Assert().Equal([]int{1, 4, 6}, res.Rolls)
	s.Assert().Equal(11, res.Total)
	s.Assert().Equal(0, res.Modifier)

	empty := fixed(0.5).RollMultiple(0, 6)
	s.Assert().Empty(empty.Rolls)
	s.Assert().Equal(0, empty.Total)

	negative := fixed(0.5).RollMultiple(-3, 6)
	s.Assert().Empty(negative.Rolls)
}

func (s *DiceTestSuite) TestRollNotation() {
	testCases := []struct {
		name     string
		notation string
		source   []float64
		rolls    []int
		total    int
		modifier int
	}{
		{name: "simple", notation: "2d6", source: []float64{0, 0.99}, rolls: []int{1, 6}, total: 7},
		{name: "modifier", notation: "2d4+2", source: []float64{0.5}, rolls: []int{3, 3}, total: 8, modifier: 2},
		{name: "spaces around plus", notation: " 1d8 + 3 ", source: []float64{0}, rolls: []int{1}, total: 4, modifier: 3},
		{name: "upper case", notation: "1D20", source: []float64{0.95}, rolls: []int{20}, total: 20},
		{name: "zero count", notation: "0d6+5", source: []float64{0.5}, rolls: []int{}, total: 5, modifier: 5},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			res := fixed(tc.source...).RollNotation(tc.notation)
			s.Assert().Equal(tc.rolls, res.Rolls)
			s.Assert().Equal(tc.total, res.Total)
			s.Assert().Equal(tc.modifier, res.Modifier)
		})
	}
}

func (s *DiceTestSuite) TestRollNotationInvalidInput() {
	for _, text := range []string{"invalid", "d20", "2d", "", "1d6-1", "2d6+", "1d6+2+3"} {
		s.Run(text, func() {
			res := fixed(0.5).RollNotation(text)
			s.Assert().Equal([]int{}, res.Rolls)
			s.Assert().Equal(0, res.Total)
		})
	}
}

func (s *DiceTestSuite) TestNotationClamping() {
	n, ok := dice.ParseNotation("500d1000+1")
	s.Require().True(ok)
	s.Assert().Equal(dice.Notation{Count: 100, Sides: 100, Modifier: 1}, n)

	n, ok = dice.ParseNotation("3d0")
	s.Require().True(ok)
	s.Assert().Equal(1, n.Sides)

	res := fixed(0.5).RollNotation("150d6")
	s.Assert().Len(res.Rolls, 100)
}

func (s *DiceTestSuite) TestNotationString() {
	s.Assert().Equal("2d6", dice.Notation{Count: 2, Sides: 6}.String())
	s.Assert().Equal("2d4+2", dice.Notation{Count: 2, Sides: 4, Modifier: 2}.String())
}

func (s *DiceTestSuite) TestToolkitRoller() {
	r := fixed(0.25)

	face, err := r.Roll(8)
	s.Require().NoError(err)
	s.Assert().Equal(3, face)

	faces, err := r.RollN(2, 4)
	s.Require().NoError(err)
	s.Assert().Equal([]int{2, 2}, faces)

	_, err = r.Roll(0)
	s.Assert().Error(err)

	_, err = r.RollN(-1, 6)
	s.Assert().Error(err)
}

func (s *DiceTestSuite) TestConcurrentUse() {
	r := dice.NewRandom()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				res := r.RollNotation("3d6+1")
				if res.Total < 4 || res.Total > 19 {
					s.T().Errorf("total out of range: %d", res.Total)
				}
			}
		}()
	}
	wg.Wait()
}
