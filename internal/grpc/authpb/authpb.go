// Package authpb описывает gRPC-сервис auth.v1.AuthService.
//
// Сообщения построены на well-known types: токен передаётся в
// wrapperspb.StringValue, пользователь и запрос Authorize в structpb.Struct.
package authpb

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/magabrotheeeer/auth-rbac/internal/models"
)

const (
	ServiceName             = "auth.v1.AuthService"
	ValidateTokenFullMethod = "/auth.v1.AuthService/ValidateToken"
	AuthorizeFullMethod     = "/auth.v1.AuthService/Authorize"
)

// Поля structpb.Struct.
const (
	fieldToken    = "token"
	fieldRoles    = "roles"
	fieldID       = "id"
	fieldUsername = "username"
	fieldEmail    = "email"
	fieldRoleID   = "role_id"
	fieldRole     = "role"
)

// AuthServiceServer серверная часть сервиса.
type AuthServiceServer interface {
	ValidateToken(ctx context.Context, token *wrapperspb.StringValue) (*structpb.Struct, error)
	Authorize(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// AuthServiceClient клиентская часть сервиса.
type AuthServiceClient interface {
	ValidateToken(ctx context.Context, token *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	Authorize(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

// RegisterAuthServiceServer регистрирует srv на gRPC-сервере.
func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

// AuthServiceDesc описание сервиса для grpc.Server.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ValidateToken", Handler: validateTokenHandler},
		{MethodName: "Authorize", Handler: authorizeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "auth/v1/auth.proto",
}

func validateTokenHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).ValidateToken(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ValidateTokenFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).ValidateToken(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func authorizeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).Authorize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: AuthorizeFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).Authorize(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAuthServiceClient создаёт клиента поверх соединения cc.
func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc: cc}
}

func (c *authServiceClient) ValidateToken(ctx context.Context, token *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ValidateTokenFullMethod, token, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) Authorize(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AuthorizeFullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// NewAuthorizeRequest собирает запрос Authorize.
func NewAuthorizeRequest(token string, roles []string) (*structpb.Struct, error) {
	list := make([]any, 0, len(roles))
	for _, r := range roles {
		list = append(list, r)
	}
	return structpb.NewStruct(map[string]any{
		fieldToken: token,
		fieldRoles: list,
	})
}

// ParseAuthorizeRequest разбирает запрос Authorize.
func ParseAuthorizeRequest(req *structpb.Struct) (token string, roles []string, err error) {
	fields := req.GetFields()
	tokenValue, ok := fields[fieldToken]
	if !ok {
		return "", nil, fmt.Errorf("authpb: field %q is required", fieldToken)
	}
	token = tokenValue.GetStringValue()
	for _, v := range fields[fieldRoles].GetListValue().GetValues() {
		role, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return "", nil, fmt.Errorf("authpb: field %q must contain strings", fieldRoles)
		}
		roles = append(roles, role.StringValue)
	}
	return token, roles, nil
}

// UserToStruct кодирует пользователя без хеша пароля.
func UserToStruct(user *models.User) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldID:       user.ID,
		fieldUsername: user.Username,
		fieldEmail:    user.Email,
		fieldRoleID:   user.RoleID,
		fieldRole:     user.Role,
	})
}

// UserFromStruct восстанавливает пользователя из ответа сервиса.
func UserFromStruct(s *structpb.Struct) (*models.User, error) {
	fields := s.GetFields()
	username := fields[fieldUsername].GetStringValue()
	if username == "" {
		return nil, fmt.Errorf("authpb: field %q is required", fieldUsername)
	}
	return &models.User{
		ID:       int64(fields[fieldID].GetNumberValue()),
		Username: username,
		Email:    fields[fieldEmail].GetStringValue(),
		RoleID:   int64(fields[fieldRoleID].GetNumberValue()),
		Role:     fields[fieldRole].GetStringValue(),
	}, nil
}
