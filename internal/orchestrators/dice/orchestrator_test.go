package dice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	engine "github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-companion/internal/repositories/dice_session"
	dicesessionmock "github.com/KirkDiggler/rpg-companion/internal/repositories/dice_session/mock"
)

const (
	testEntityID = "char_123"
	testContext  = "combat"
)

// faceSource replays d6 faces in a loop.
type faceSource struct {
	faces []int
	next  int
}

func (f *faceSource) Float64() float64 {
	face := f.faces[f.next%len(f.faces)]
	f.next++
	return (float64(face-1) + 0.5) / 6
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockRepo *dicesessionmock.MockRepository
	clock    *clock.Fixed
	ctx      context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = dicesessionmock.NewMockRepository(s.ctrl)
	s.clock = &clock.Fixed{At: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) newOrchestrator(faces ...int) dice.Service {
	o, err := dice.NewOrchestrator(&dice.Config{
		DiceSessionRepo: s.mockRepo,
		IDGenerator:     idgen.NewSequential("roll"),
		Roller:          engine.New(&faceSource{faces: faces}),
		Clock:           s.clock,
	})
	s.Require().NoError(err)
	return o
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := dice.NewOrchestrator(&dice.Config{SessionTTL: -time.Second})
	s.Require().Error(err)

	fields := errors.ValidationFields(err)
	s.Assert().Contains(fields, "DiceSessionRepo")
	s.Assert().Contains(fields, "IDGenerator")
	s.Assert().Contains(fields, "Roller")
	s.Assert().Contains(fields, "SessionTTL")
}

func (s *OrchestratorTestSuite) TestRollDiceWithModifier() {
	o := s.newOrchestrator(4, 5)

	s.mockRepo.EXPECT().
		Append(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dicesession.AppendInput) (*dicesession.AppendOutput, error) {
			s.Assert().Equal(testEntityID, input.EntityID)
			s.Assert().Equal(testContext, input.Context)
			s.Assert().Equal(dice.DefaultSessionTTL, input.TTL)
			s.Require().Len(input.Rolls, 1)
			return &dicesession.AppendOutput{Session: &dicesession.DiceSession{
				EntityID: input.EntityID,
				Context:  input.Context,
				Rolls:    input.Rolls,
			}}, nil
		})

	out, err := o.RollDice(s.ctx, &dice.RollDiceInput{
		EntityID:    testEntityID,
		Context:     testContext,
		Notation:    " 2D6 + 3 ",
		Description: "Greatsword damage",
	})
	s.Require().NoError(err)

	roll := out.Roll
	s.Assert().Equal("roll_000001", roll.RollID)
	s.Assert().Equal("2d6+3", roll.Notation)
	s.Assert().Equal([]int{4, 5}, roll.Dice)
	s.Assert().Equal(9, roll.DiceTotal)
	s.Assert().Equal(3, roll.Modifier)
	s.Assert().Equal(12, roll.Total)
	s.Assert().Equal("Greatsword damage", roll.Description)
	s.Assert().Equal(s.clock.At, roll.RolledAt)
	s.Assert().Len(out.Session.Rolls, 1)
}

func (s *OrchestratorTestSuite) TestRollDiceUsesRequestedTTL() {
	o := s.newOrchestrator(6)

	s.mockRepo.EXPECT().
		Append(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dicesession.AppendInput) (*dicesession.AppendOutput, error) {
			s.Assert().Equal(time.Minute, input.TTL)
			return &dicesession.AppendOutput{Session: &dicesession.DiceSession{Rolls: input.Rolls}}, nil
		})

	out, err := o.RollDice(s.ctx, &dice.RollDiceInput{
		EntityID: testEntityID,
		Context:  testContext,
		Notation: "1d6",
		TTL:      time.Minute,
	})
	s.Require().NoError(err)
	s.Assert().Equal(6, out.Roll.Total)
	s.Assert().Equal(0, out.Roll.Modifier)
}

func (s *OrchestratorTestSuite) TestRollDiceRejectsInput() {
	o := s.newOrchestrator(1)

	testCases := []struct {
		name  string
		input *dice.RollDiceInput
	}{
		{name: "nil input"},
		{name: "missing entity", input: &dice.RollDiceInput{Context: testContext, Notation: "1d20"}},
		{name: "missing context", input: &dice.RollDiceInput{EntityID: testEntityID, Notation: "1d20"}},
		{name: "missing notation", input: &dice.RollDiceInput{EntityID: testEntityID, Context: testContext}},
		{name: "bad notation", input: &dice.RollDiceInput{EntityID: testEntityID, Context: testContext, Notation: "d20"}},
		{name: "negative modifier", input: &dice.RollDiceInput{EntityID: testEntityID, Context: testContext, Notation: "1d20-1"}},
		{name: "zero dice", input: &dice.RollDiceInput{EntityID: testEntityID, Context: testContext, Notation: "0d6"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := o.RollDice(s.ctx, tc.input)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestRollDiceRepositoryError() {
	o := s.newOrchestrator(3)

	s.mockRepo.EXPECT().
		Append(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	_, err := o.RollDice(s.ctx, &dice.RollDiceInput{EntityID: testEntityID, Context: testContext, Notation: "1d6"})
	s.Require().Error(err)
	s.Assert().Equal(errors.CodeUnavailable, errors.GetCode(err))
}

func (s *OrchestratorTestSuite) TestGetRollSession() {
	o := s.newOrchestrator(1)
	session := &dicesession.DiceSession{EntityID: testEntityID, Context: testContext}

	s.mockRepo.EXPECT().
		Get(s.ctx, dicesession.GetInput{EntityID: testEntityID, Context: testContext}).
		Return(&dicesession.GetOutput{Session: session}, nil)

	out, err := o.GetRollSession(s.ctx, &dice.GetRollSessionInput{EntityID: testEntityID, Context: testContext})
	s.Require().NoError(err)
	s.Assert().Same(session, out.Session)
}

func (s *OrchestratorTestSuite) TestGetRollSessionNotFound() {
	o := s.newOrchestrator(1)

	s.mockRepo.EXPECT().
		Get(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("dice session not found"))

	_, err := o.GetRollSession(s.ctx, &dice.GetRollSessionInput{EntityID: testEntityID, Context: testContext})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestClearRollSession() {
	o := s.newOrchestrator(1)

	s.mockRepo.EXPECT().
		Delete(s.ctx, dicesession.DeleteInput{EntityID: testEntityID, Context: testContext}).
		Return(&dicesession.DeleteOutput{RollsDeleted: 4}, nil)

	out, err := o.ClearRollSession(s.ctx, &dice.ClearRollSessionInput{EntityID: testEntityID, Context: testContext})
	s.Require().NoError(err)
	s.Assert().Equal(4, out.RollsDeleted)
}

func (s *OrchestratorTestSuite) expectAbilitySession() {
	s.mockRepo.EXPECT().
		Create(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input dicesession.CreateInput) (*dicesession.CreateOutput, error) {
			s.Assert().Equal(testEntityID, input.EntityID)
			s.Assert().Equal(dice.ContextAbilityScores, input.Context)
			s.Assert().Equal(dice.DefaultSessionTTL, input.TTL)
			s.Assert().Len(input.Rolls, 6)
			return &dicesession.CreateOutput{Session: &dicesession.DiceSession{
				EntityID: input.EntityID,
				Context:  input.Context,
				Rolls:    input.Rolls,
			}}, nil
		})
}

func (s *OrchestratorTestSuite) TestRollAbilityScoresStandard() {
	o := s.newOrchestrator(2, 6, 5, 3)
	s.expectAbilitySession()

	out, err := o.RollAbilityScores(s.ctx, &dice.RollAbilityScoresInput{EntityID: testEntityID})
	s.Require().NoError(err)
	s.Require().Len(out.Rolls, 6)

	for i, roll := range out.Rolls {
		s.Assert().Equal("4d6", roll.Notation)
		s.Assert().Equal([]int{6, 5, 3}, roll.Dice)
		s.Assert().Equal([]int{2}, roll.Dropped)
		s.Assert().Equal(14, roll.Total)
		s.Assert().Equal(14, roll.DiceTotal)
		s.Assert().Contains(roll.Description, dice.MethodStandard)
		if i > 0 {
			s.Assert().NotEqual(out.Rolls[i-1].RollID, roll.RollID)
		}
	}
}

func (s *OrchestratorTestSuite) TestRollAbilityScoresDropsOnlyOneOfEqualLowest() {
	o := s.newOrchestrator(3, 3, 4, 5)
	s.expectAbilitySession()

	out, err := o.RollAbilityScores(s.ctx, &dice.RollAbilityScoresInput{EntityID: testEntityID, Method: dice.MethodStandard})
	s.Require().NoError(err)
	s.Assert().Equal([]int{3, 4, 5}, out.Rolls[0].Dice)
	s.Assert().Equal([]int{3}, out.Rolls[0].Dropped)
	s.Assert().Equal(12, out.Rolls[0].Total)
}

func (s *OrchestratorTestSuite) TestRollAbilityScoresClassic() {
	o := s.newOrchestrator(1, 2, 3)
	s.expectAbilitySession()

	out, err := o.RollAbilityScores(s.ctx, &dice.RollAbilityScoresInput{EntityID: testEntityID, Method: dice.MethodClassic})
	s.Require().NoError(err)
	for _, roll := range out.Rolls {
		s.Assert().Equal("3d6", roll.Notation)
		s.Assert().Equal([]int{1, 2, 3}, roll.Dice)
		s.Assert().Empty(roll.Dropped)
		s.Assert().Equal(6, roll.Total)
	}
}

func (s *OrchestratorTestSuite) TestRollAbilityScoresHeroicRerollsOnes() {
	// 4d6 comes up 1,4,4,4 and the 1 is rerolled into a 6.
	o := s.newOrchestrator(1, 4, 4, 4, 6)
	s.expectAbilitySession()

	out, err := o.RollAbilityScores(s.ctx, &dice.RollAbilityScoresInput{EntityID: testEntityID, Method: dice.MethodHeroic})
	s.Require().NoError(err)

	first := out.Rolls[0]
	s.Assert().Equal([]int{6, 4, 4}, first.Dice)
	s.Assert().Equal([]int{4}, first.Dropped)
	s.Assert().Equal(14, first.Total)
	for _, roll := range out.Rolls {
		s.Assert().NotContains(roll.Dice, 1)
	}
}

func (s *OrchestratorTestSuite) TestRollAbilityScoresUnsupportedMethod() {
	o := s.newOrchestrator(1)

	_, err := o.RollAbilityScores(s.ctx, &dice.RollAbilityScoresInput{EntityID: testEntityID, Method: "point_buy"})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
