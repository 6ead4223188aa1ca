package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"resourceshub/model"
	"resourceshub/utils"
)

type SubscribeOutcome int

const (
	SubscriptionCreated SubscribeOutcome = iota
	SubscriptionReactivated
)

type SubscriberService struct {
	repo SubscriberRepository
}

func NewSubscriberService(repo SubscriberRepository) *SubscriberService {
	return &SubscriberService{repo: repo}
}

func normalizeSubscriberEmail(email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", ErrEmailRequired
	}
	email = utils.NormalizeEmail(email)
	if !utils.ValidSubscriberEmail(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Subscribe adds a newsletter subscriber, reactivating an inactive one.
func (s *SubscriberService) Subscribe(ctx context.Context, email string) (*model.Subscriber, SubscribeOutcome, error) {
	email, err := normalizeSubscriberEmail(email)
	if err != nil {
		return nil, 0, translate(err)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Active {
			return nil, 0, ErrAlreadySubscribed
		}
		sub, err := s.repo.SetActive(ctx, email, true)
		if err != nil {
			return nil, 0, translate(err)
		}
		return sub, SubscriptionReactivated, nil
	case !errors.Is(translate(err), ErrNotFound):
		return nil, 0, translate(err)
	}

	sub := &model.Subscriber{
		Email:            email,
		SubscriptionDate: time.Now().UTC(),
		Active:           true,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		// Lost a race with a concurrent subscribe for the same address.
		if errors.Is(translate(err), ErrConflict) {
			return nil, 0, ErrAlreadySubscribed
		}
		return nil, 0, translate(err)
	}
	return sub, SubscriptionCreated, nil
}

func (s *SubscriberService) Unsubscribe(ctx context.Context, email string) (*model.Subscriber, error) {
	email, err := normalizeSubscriberEmail(email)
	if err != nil {
		return nil, translate(err)
	}
	sub, err := s.repo.SetActive(ctx, email, false)
	return sub, translate(err)
}

func (s *SubscriberService) List(ctx context.Context, active *bool) ([]model.Subscriber, error) {
	subs, err := s.repo.List(ctx, active)
	if err != nil {
		return nil, translate(err)
	}
	if subs == nil {
		subs = []model.Subscriber{}
	}
	return subs, nil
}
