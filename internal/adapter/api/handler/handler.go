package handler

import (
	"staygo/internal/usecase"
)

var (
	authHandler        *AuthHandler
	userHandler        *UserHandler
	listingHandler     *ListingHandler
	reservationHandler *ReservationHandler
	paymentHandler     *PaymentHandler
	reviewHandler      *ReviewHandler
	messageHandler     *MessageHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	listingUseCase *usecase.ListingUseCase,
	reservationUseCase *usecase.ReservationUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	messagingUseCase *usecase.MessagingUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	reservationHandler = NewReservationHandler(reservationUseCase)
	paymentHandler = NewPaymentHandler(paymentUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	messageHandler = NewMessageHandler(messagingUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetReservationHandler() *ReservationHandler {
	return reservationHandler
}

func GetPaymentHandler() *PaymentHandler {
	return paymentHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetMessageHandler() *MessageHandler {
	return messageHandler
}
