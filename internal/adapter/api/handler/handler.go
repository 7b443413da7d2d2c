package handler

import (
	"carrylink/internal/usecase"
)

var (
	userHandler         *UserHandler
	listingHandler      *ListingHandler
	matchHandler        *MatchHandler
	chatHandler         *ChatHandler
	reviewHandler       *ReviewHandler
	notificationHandler *NotificationHandler
)

func Setup(
	userUseCase *usecase.UserUseCase,
	listingUseCase *usecase.ListingUseCase,
	matchUseCase *usecase.MatchUseCase,
	chatUseCase *usecase.ChatUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	notificationUseCase *usecase.NotificationUseCase,
) {
	userHandler = NewUserHandler(userUseCase, reviewUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	matchHandler = NewMatchHandler(matchUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetMatchHandler() *MatchHandler {
	return matchHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}
