package storefront

import (
	"fmt"

	"github.com/matheusmosca/techstore/internal/notice"
)

func noticeMissingInformation() notice.Notice {
	return notice.Destructive("Missing Information", "Please fill in all required fields.")
}

func noticeInvalidPaymentMethod() notice.Notice {
	return notice.Destructive("Invalid Payment Method", "Please choose card, UPI or PayPal.")
}

func noticeRedirecting() notice.Notice {
	return notice.New("Redirecting to Delivery Service", "Please complete your delivery and payment details.")
}

func noticeAddedToCart(p Product) notice.Notice {
	return notice.New("Added to cart", fmt.Sprintf("%s has been added to your cart.", p.Name))
}

func noticeOutOfStock(p Product) notice.Notice {
	return notice.Destructive("Out of Stock", fmt.Sprintf("%s is currently out of stock.", p.Name))
}

func noticeTrackOrder(tracking string) notice.Notice {
	return notice.New("Track Order", fmt.Sprintf("Track your order with: %s", tracking))
}
