package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/habitquest/backend/internal/domain/subscription"
	"github.com/habitquest/backend/pkg/kafka"
	"github.com/habitquest/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

// startSubscriber runs the worker that consumes subscription lifecycle facts
// from the payment collaborator and merges them into the user documents. It
// runs as its own process, so there are no live sessions to update here.
func (s *srv) startSubscriber(ct *cli.Context) error {
	s.loadConfig()
	s.loadContext()
	s.loadDatabase()
	s.loadRepos()

	subscriptionDomain := subscription.NewDomain(s.userStateRepo, nil)

	subscriber := kafka.NewSubscriber(
		s.configs.Kafka.ConsumerGroup,
		[]string{s.configs.Kafka.Addr},
		[]string{s.configs.Kafka.SubscriptionTopic},
		subscriptionDomain.Subscribe,
	)

	xcontext.Logger(s.ctx).Infof(
		"Subscribing to %s as %s",
		s.configs.Kafka.SubscriptionTopic, s.configs.Kafka.ConsumerGroup,
	)
	subscriber.Subscribe(s.ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return subscriber.Stop(s.ctx)
}
