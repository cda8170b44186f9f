package docstore

import (
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SnapshotFromStreamImage decodes a DynamoDB Streams image into a snapshot
func SnapshotFromStreamImage(image map[string]events.DynamoDBAttributeValue) (Snapshot, error) {
	if len(image) == 0 {
		return Snapshot{}, errors.New("stream record has no image")
	}

	av := make(map[string]types.AttributeValue, len(image))
	for name, value := range image {
		converted, err := fromStreamAttribute(value)
		if err != nil {
			return Snapshot{}, fmt.Errorf("attribute %s: %w", name, err)
		}
		av[name] = converted
	}

	return snapshotFromItem(av)
}

// StreamImage encodes a document the way it appears in a DynamoDB Streams image
func StreamImage(p Path, data map[string]any, at time.Time) (map[string]events.DynamoDBAttributeValue, error) {
	ts := at.UTC().Format(time.RFC3339Nano)
	if data == nil {
		data = map[string]any{}
	}
	av, err := attributevalue.MarshalMap(item{
		PK:        PKPrefixCollection + p.Collection,
		SK:        SKPrefixDoc + p.ID,
		Data:      data,
		CreatedAt: ts,
		UpdatedAt: ts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	image := make(map[string]events.DynamoDBAttributeValue, len(av))
	for name, value := range av {
		converted, err := toStreamAttribute(value)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		image[name] = converted
	}
	return image, nil
}

// StreamKeys returns the key attributes for p as they appear in a stream record
func StreamKeys(p Path) map[string]events.DynamoDBAttributeValue {
	return map[string]events.DynamoDBAttributeValue{
		"pk": events.NewStringAttribute(PKPrefixCollection + p.Collection),
		"sk": events.NewStringAttribute(SKPrefixDoc + p.ID),
	}
}

func fromStreamAttribute(v events.DynamoDBAttributeValue) (types.AttributeValue, error) {
	switch v.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: v.String()}, nil
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: v.Number()}, nil
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: v.Boolean()}, nil
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: v.Binary()}, nil
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: v.StringSet()}, nil
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: v.NumberSet()}, nil
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: v.BinarySet()}, nil
	case events.DataTypeList:
		list := v.List()
		out := make([]types.AttributeValue, 0, len(list))
		for i, elem := range list {
			converted, err := fromStreamAttribute(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out = append(out, converted)
		}
		return &types.AttributeValueMemberL{Value: out}, nil
	case events.DataTypeMap:
		m := v.Map()
		out := make(map[string]types.AttributeValue, len(m))
		for name, elem := range m {
			converted, err := fromStreamAttribute(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			out[name] = converted
		}
		return &types.AttributeValueMemberM{Value: out}, nil
	default:
		return nil, fmt.Errorf("unsupported stream data type %v", v.DataType())
	}
}

func toStreamAttribute(v types.AttributeValue) (events.DynamoDBAttributeValue, error) {
	switch tv := v.(type) {
	case *types.AttributeValueMemberS:
		return events.NewStringAttribute(tv.Value), nil
	case *types.AttributeValueMemberN:
		return events.NewNumberAttribute(tv.Value), nil
	case *types.AttributeValueMemberBOOL:
		return events.NewBooleanAttribute(tv.Value), nil
	case *types.AttributeValueMemberB:
		return events.NewBinaryAttribute(tv.Value), nil
	case *types.AttributeValueMemberNULL:
		return events.NewNullAttribute(), nil
	case *types.AttributeValueMemberSS:
		return events.NewStringSetAttribute(tv.Value), nil
	case *types.AttributeValueMemberNS:
		return events.NewNumberSetAttribute(tv.Value), nil
	case *types.AttributeValueMemberBS:
		return events.NewBinarySetAttribute(tv.Value), nil
	case *types.AttributeValueMemberL:
		out := make([]events.DynamoDBAttributeValue, 0, len(tv.Value))
		for i, elem := range tv.Value {
			converted, err := toStreamAttribute(elem)
			if err != nil {
				return events.DynamoDBAttributeValue{}, fmt.Errorf("[%d]: %w", i, err)
			}
			out = append(out, converted)
		}
		return events.NewListAttribute(out), nil
	case *types.AttributeValueMemberM:
		out := make(map[string]events.DynamoDBAttributeValue, len(tv.Value))
		for name, elem := range tv.Value {
			converted, err := toStreamAttribute(elem)
			if err != nil {
				return events.DynamoDBAttributeValue{}, fmt.Errorf("%s: %w", name, err)
			}
			out[name] = converted
		}
		return events.NewMapAttribute(out), nil
	default:
		return events.DynamoDBAttributeValue{}, fmt.Errorf("unsupported attribute value %T", v)
	}
}
