package form_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/charform/internal/clients/registry"
	mockregistry "github.com/KirkDiggler/charform/internal/clients/registry/mock"
	"github.com/KirkDiggler/charform/internal/domain/character"
	dnderr "github.com/KirkDiggler/charform/internal/errors"
	"github.com/KirkDiggler/charform/internal/services/form"
	mockuuid "github.com/KirkDiggler/charform/internal/uuid/mock"
)

type SessionTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	registry *mockregistry.MockClient
	now      time.Time
	session  *form.Session
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.registry = mockregistry.NewMockClient(s.ctrl)
	s.now = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)

	gen := mockuuid.NewMockGenerator(s.ctrl)
	gen.EXPECT().New().Return("session-1")

	session, err := form.New(&form.Config{
		Registry:      s.registry,
		UserID:        "u1",
		Clock:         func() time.Time { return s.now },
		UUIDGenerator: gen,
	})
	s.Require().NoError(err)
	s.session = session
}

func (s *SessionTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SessionTestSuite) fillForm() {
	for field, value := range map[character.Field]string{
		character.FieldName:        "Mina",
		character.FieldPersonality: "Calm",
		character.FieldAppearance:  "Silver hair",
		character.FieldSetting:     "Harbor town",
		character.FieldStory:       "Keeps the lighthouse",
	} {
		s.Require().NoError(s.session.ChangeField(field, value))
	}
}

func (s *SessionTestSuite) TestNew() {
	s.Equal("session-1", s.session.ID())
	s.Equal("u1", s.session.Record().UserID)
	s.Equal(character.CategoryUnset, s.session.Category())

	_, err := form.New(&form.Config{})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *SessionTestSuite) TestChangeField() {
	s.Require().NoError(s.session.ChangeField(character.FieldAge, "30"))
	s.Equal(30, s.session.Record().Age)

	err := s.session.ChangeField(character.FieldUserID, "someone-else")
	s.True(dnderr.IsInvalidArgument(err))
	s.Equal("u1", s.session.Record().UserID)

	err = s.session.ChangeField(character.FieldHP, "many")
	s.True(dnderr.IsInvalidArgument(err))
	s.Equal(100, s.session.Record().HP)
}

func (s *SessionTestSuite) TestSelectCategory() {
	s.session.SelectImage(&character.Image{Filename: "face.jpg", ContentType: "image/jpeg", Data: []byte{1}})

	s.Require().NoError(s.session.SelectCategory(character.CategoryEnemy))
	rec := s.session.Record()
	s.Equal("enemy_20250101000000_01", rec.CharacterID)
	s.Equal("enemy_20250101000000_01.jpg", rec.ImageName)

	s.Run("same category is not re-derived", func() {
		s.now = s.now.Add(time.Minute)
		s.Require().NoError(s.session.SelectCategory(character.CategoryEnemy))
		s.Equal("enemy_20250101000000_01", s.session.Record().CharacterID)
	})

	s.Run("changing category stamps a fresh time", func() {
		s.Require().NoError(s.session.SelectCategory(character.CategoryFixed))
		s.Equal("fixed_20250101000100_01", s.session.Record().CharacterID)
		s.Equal("fixed_20250101000100_01.jpg", s.session.Record().ImageName)
	})

	s.Run("unset is rejected", func() {
		err := s.session.SelectCategory(character.CategoryUnset)
		s.True(dnderr.IsInvalidArgument(err))
		s.Equal(character.CategoryFixed, s.session.Category())
	})
}

func (s *SessionTestSuite) TestSubmit_RequiresCategory() {
	s.fillForm()

	status, err := s.session.Submit(context.Background())
	s.True(dnderr.IsValidation(err))
	s.False(status.OK)
}

func (s *SessionTestSuite) TestSubmit_RequiresCompleteForm() {
	s.Require().NoError(s.session.SelectCategory(character.CategoryEnemy))

	status, err := s.session.Submit(context.Background())
	s.True(dnderr.IsValidation(err))
	s.Contains(status.Message, "name")
}

func (s *SessionTestSuite) TestSubmit_Success() {
	img := &character.Image{Filename: "face.png", ContentType: "image/png", Data: []byte{1, 2}}
	s.session.SelectImage(img)
	s.fillForm()
	s.Require().NoError(s.session.SelectCategory(character.CategoryFixed))
	before := s.session.Record()

	s.registry.EXPECT().
		Register(gomock.Any(), before, img).
		Return(&registry.Ack{StatusCode: http.StatusOK, RequestID: "req-1"}, nil)

	status, err := s.session.Submit(context.Background())
	s.Require().NoError(err)
	s.True(status.OK)
	s.Equal(before, s.session.Record())
}

func (s *SessionTestSuite) TestSubmit_Failures() {
	s.fillForm()
	s.Require().NoError(s.session.SelectCategory(character.CategoryEnemy))
	before := s.session.Record()

	s.registry.EXPECT().
		Register(gomock.Any(), before, nil).
		Return(nil, dnderr.Rejected(http.StatusInternalServerError, "request rejected with status 500"))

	status, err := s.session.Submit(context.Background())
	s.True(dnderr.IsRejected(err))
	s.False(status.OK)
	s.Equal("Registration failed. Status: 500", status.Message)
	s.Equal(before, s.session.Record())

	s.registry.EXPECT().
		Register(gomock.Any(), before, nil).
		Return(nil, dnderr.Unavailable(nil, "network error"))

	status, err = s.session.Submit(context.Background())
	s.True(dnderr.IsUnavailable(err))
	s.Equal("A network error occurred.", status.Message)
	s.Equal(before, s.session.Record())
}

func (s *SessionTestSuite) TestAssist_Overlays() {
	s.Require().NoError(s.session.SelectCategory(character.CategoryEnemy))
	before := s.session.Record()

	generated := character.Overlay(before, character.Record{Name: "New", HP: 999})
	s.registry.EXPECT().
		AssistGenerate(gomock.Any(), before, nil).
		Return(generated, nil)

	status, err := s.session.Assist(context.Background())
	s.Require().NoError(err)
	s.True(status.OK)

	rec := s.session.Record()
	s.Equal("New", rec.Name)
	s.Equal(999, rec.HP)
	s.Equal(before.CharacterID, rec.CharacterID)
	s.Equal(before.ImageName, rec.ImageName)
}

func (s *SessionTestSuite) TestAssist_FailureKeepsRecord() {
	s.Require().NoError(s.session.SelectCategory(character.CategoryEnemy))
	s.Require().NoError(s.session.ChangeField(character.FieldName, "Mine"))
	before := s.session.Record()

	s.registry.EXPECT().
		AssistGenerate(gomock.Any(), before, nil).
		Return(before, dnderr.Decode(nil, "generation response is empty"))

	status, err := s.session.Assist(context.Background())
	s.True(dnderr.IsDecode(err))
	s.False(status.OK)
	s.Equal(before, s.session.Record())
}

func (s *SessionTestSuite) TestAssist_RequiresIdentifiers() {
	_, err := s.session.Assist(context.Background())
	s.True(dnderr.IsValidation(err))
}

func (s *SessionTestSuite) TestOneRequestInFlight() {
	s.fillForm()
	s.Require().NoError(s.session.SelectCategory(character.CategoryEnemy))

	started := make(chan struct{})
	release := make(chan struct{})
	s.registry.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec character.Record, img *character.Image) (*registry.Ack, error) {
			close(started)
			<-release
			return &registry.Ack{StatusCode: http.StatusOK}, nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := s.session.Submit(context.Background())
		done <- err
	}()
	<-started

	status, err := s.session.Assist(context.Background())
	s.True(dnderr.IsBusy(err))
	s.Equal("Another request is still in progress.", status.Message)

	_, err = s.session.Submit(context.Background())
	s.True(dnderr.IsBusy(err))

	close(release)
	s.NoError(<-done)
}

func (s *SessionTestSuite) TestAssist_CategoryChangedMidFlight() {
	s.Require().NoError(s.session.SelectCategory(character.CategoryEnemy))
	stale := s.session.Record()

	started := make(chan struct{})
	release := make(chan struct{})
	s.registry.EXPECT().
		AssistGenerate(gomock.Any(), stale, gomock.Any()).
		DoAndReturn(func(ctx context.Context, rec character.Record, img *character.Image) (character.Record, error) {
			close(started)
			<-release
			generated := rec
			generated.Name = "Drafted"
			generated.HP = 140
			return generated, nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := s.session.Assist(context.Background())
		done <- err
	}()
	<-started

	s.now = s.now.Add(time.Minute)
	s.Require().NoError(s.session.SelectCategory(character.CategoryFixed))

	close(release)
	s.Require().NoError(<-done)

	got := s.session.Record()
	s.Equal(character.CategoryFixed, s.session.Category())
	s.Equal("fixed_20250101000100_01", got.CharacterID)
	s.Equal("fixed_20250101000100_01.png", got.ImageName)
	s.Equal("u1", got.UserID)
	s.Equal("Drafted", got.Name)
	s.Equal(140, got.HP)
}
